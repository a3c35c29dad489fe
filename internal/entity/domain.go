package entity

// Entity kinds of the studio hierarchy.
const (
	KindProject      = "project"
	KindEpisode      = "episode"
	KindSequence     = "sequence"
	KindShot         = "shot"
	KindAsset        = "asset"
	KindInstance     = "instance"
	KindTask         = "task"
	KindPublishGroup = "publishgroup"
	KindPublish      = "publish"
)

// Project is the top of the hierarchy. Schema names the path layout the
// project uses ("film" or "tv").
type Project struct {
	ID          int
	Name        string
	Root        string
	Schema      string
	Status      string
	Description string
}

func (p *Project) Kind() string   { return KindProject }
func (p *Project) Parent() Entity { return nil }
func (p *Project) String() string { return p.Name }

// Episode groups sequences in episodic projects.
type Episode struct {
	ID      int
	Name    string
	Status  string
	Project *Project
}

func (e *Episode) Kind() string   { return KindEpisode }
func (e *Episode) String() string { return e.Name }

func (e *Episode) Parent() Entity {
	if e.Project != nil {
		return e.Project
	}

	return nil
}

// Sequence belongs to an episode when the project is episodic, otherwise
// directly to the project.
type Sequence struct {
	ID      int
	Name    string
	Status  string
	Project *Project
	Episode *Episode
}

func (s *Sequence) Kind() string   { return KindSequence }
func (s *Sequence) String() string { return s.Name }

func (s *Sequence) Parent() Entity {
	switch {
	case s.Episode != nil:
		return s.Episode
	case s.Project != nil:
		return s.Project
	default:
		return nil
	}
}

// Shot is a cut range within a sequence.
type Shot struct {
	ID         int
	Name       string
	Status     string
	CutIn      int
	CutOut     int
	HandlesIn  int
	HandlesOut int
	Project    *Project
	Sequence   *Sequence
}

func (s *Shot) Kind() string   { return KindShot }
func (s *Shot) String() string { return s.Name }

func (s *Shot) Parent() Entity {
	if s.Sequence != nil {
		return s.Sequence
	}

	return nil
}

// FullName is "<episode>_<sequence>_<shot>", dropping missing levels.
func (s *Shot) FullName() string {
	name := s.Name
	if s.Sequence == nil {
		return name
	}

	name = s.Sequence.Name + "_" + name
	if s.Sequence.Episode != nil {
		name = s.Sequence.Episode.Name + "_" + name
	}

	return name
}

// Frames returns the shot length in frames, handles excluded.
func (s *Shot) Frames() int {
	if s.CutOut < s.CutIn {
		return 0
	}

	return s.CutOut - s.CutIn + 1
}

// Asset is a reusable element of a project. AssetKind is exposed to templates
// as "kind" ("char", "prop", "env").
type Asset struct {
	ID        int
	Name      string
	Status    string
	AssetKind string `attr:"kind"`
	Library   bool
	Project   *Project
}

func (a *Asset) Kind() string   { return KindAsset }
func (a *Asset) String() string { return a.Name }

func (a *Asset) Parent() Entity {
	if a.Project != nil {
		return a.Project
	}

	return nil
}

// Instance is an asset placed in a shot, sequence or asset.
type Instance struct {
	ID       int
	Name     string
	Status   string
	Shot     *Shot
	Sequence *Sequence
	Asset    *Asset
}

func (i *Instance) Kind() string   { return KindInstance }
func (i *Instance) String() string { return i.Name }

func (i *Instance) Parent() Entity {
	return firstOf(i.Shot, i.Sequence, i.Asset)
}

// FullName prefixes the instance name with its shot's full name.
func (i *Instance) FullName() string {
	if i.Shot == nil {
		return i.Name
	}

	return i.Shot.FullName() + "_" + i.Name
}

// Task is a unit of work at some pipeline stage.
type Task struct {
	ID       int
	Name     string
	Stage    string
	Status   string
	Shot     *Shot
	Sequence *Sequence
	Asset    *Asset
}

func (t *Task) Kind() string   { return KindTask }
func (t *Task) String() string { return t.Name }

func (t *Task) Parent() Entity {
	return firstOf(t.Shot, t.Sequence, t.Asset)
}

// PublishGroup collects the versions of one published output.
type PublishGroup struct {
	ID       int
	Name     string
	Status   string
	Instance *Instance
	Shot     *Shot
	Sequence *Sequence
	Asset    *Asset
}

func (g *PublishGroup) Kind() string   { return KindPublishGroup }
func (g *PublishGroup) String() string { return g.Name }

func (g *PublishGroup) Parent() Entity {
	if g.Instance != nil {
		return g.Instance
	}

	return firstOf(g.Shot, g.Sequence, g.Asset)
}

// Publish is one version in a publish group. Its parent is the group's
// parent, so a publish sits directly under the shot or asset it belongs to.
type Publish struct {
	ID           int
	Name         string
	Version      int
	Status       string
	PublishGroup *PublishGroup
	Task         *Task
}

func (p *Publish) Kind() string   { return KindPublish }
func (p *Publish) String() string { return p.Name }

func (p *Publish) Parent() Entity {
	if p.PublishGroup != nil {
		return p.PublishGroup.Parent()
	}

	return nil
}

// firstOf returns the first set owner. Typed nil pointers must not leak into
// the Entity interface.
func firstOf(shot *Shot, seq *Sequence, asset *Asset) Entity {
	switch {
	case shot != nil:
		return shot
	case seq != nil:
		return seq
	case asset != nil:
		return asset
	default:
		return nil
	}
}
