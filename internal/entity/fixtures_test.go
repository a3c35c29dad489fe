package entity

// studio builds a small film hierarchy shared by the tests.
type studio struct {
	project  *Project
	episode  *Episode
	sequence *Sequence
	epSeq    *Sequence
	shot     *Shot
	epShot   *Shot
	asset    *Asset
	instance *Instance
	task     *Task
	group    *PublishGroup
	publish  *Publish
}

func newStudio() *studio {
	s := &studio{}
	s.project = &Project{ID: 1, Name: "unittest", Root: "/tmp/unittest", Schema: "film", Status: "act"}
	s.episode = &Episode{ID: 1, Name: "ep01", Project: s.project}
	s.sequence = &Sequence{ID: 1, Name: "101", Project: s.project}
	s.epSeq = &Sequence{ID: 2, Name: "201", Project: s.project, Episode: s.episode}
	s.shot = &Shot{ID: 1, Name: "001", CutIn: 1001, CutOut: 1048, Project: s.project, Sequence: s.sequence}
	s.epShot = &Shot{ID: 2, Name: "010", Project: s.project, Sequence: s.epSeq}
	s.asset = &Asset{ID: 1, Name: "hero", AssetKind: "char", Project: s.project}
	s.instance = &Instance{ID: 1, Name: "hero1", Shot: s.shot, Asset: s.asset}
	s.task = &Task{ID: 1, Name: "anim", Stage: "animation", Shot: s.shot}
	s.group = &PublishGroup{ID: 1, Name: "cache", Instance: s.instance}
	s.publish = &Publish{ID: 1, Name: "cache_v003", Version: 3, PublishGroup: s.group, Task: s.task}

	return s
}
