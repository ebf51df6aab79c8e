package workspace

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when an entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoChapter is returned by chapter-scoped operations when no chapter
	// is open.
	ErrNoChapter = errors.New("open a chapter first")
)

// Card kinds stored by the workspace.
const (
	KindCharacter = "character"
	KindWorld     = "world"
	KindStyle     = "style"
	KindOutline   = "outline"
	KindLore      = "lore"
	KindWorldRule = "world_rule"
	KindTechnique = "technique"
	KindCategory  = "technique_category"
)

// Card is a typed document owned by a project.
type Card struct {
	ID      string          `json:"id" yaml:"id"`
	Type    string          `json:"type" yaml:"type"`
	Title   string          `json:"title" yaml:"title"`
	Tags    []string        `json:"tags" yaml:"tags"`
	Payload json.RawMessage `json:"payload,omitempty" yaml:"-"`
}

// IsWorld reports whether the card belongs in the world panel.
func (c Card) IsWorld() bool {
	return c.Type == KindWorld || c.Type == KindLore || c.Type == KindWorldRule
}

// Scene is one entry of a blueprint's scene plan.
type Scene struct {
	ID           string   `json:"scene_id"`
	Phase        string   `json:"phase"`
	Purpose      string   `json:"purpose"`
	Situation    string   `json:"situation"`
	ChoicePoints []string `json:"choice_points"`
}

// Blueprint is a story plan made of scenes.
type Blueprint struct {
	ID          string  `json:"id"`
	StoryTypeID string  `json:"story_type_id"`
	Title       string  `json:"title"`
	ScenePlan   []Scene `json:"scene_plan"`
}

// Chapter is a draft plus its metadata.
type Chapter struct {
	ID          string         `json:"chapter_id"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	BlueprintID string         `json:"blueprint_id,omitempty"`
	SceneIndex  *int           `json:"scene_index,omitempty"`
	Signals     *bool          `json:"signals,omitempty"`
	Techniques  []PinnedItem   `json:"pinned_techniques"`
	Categories  []PinnedItem   `json:"pinned_technique_categories"`
}

// PinnedItem attaches a technique or a technique category to a chapter.
type PinnedItem struct {
	ID        string   `json:"id"`
	Intensity string   `json:"intensity"`
	Weight    *float64 `json:"weight,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// Technique is a writing technique that can be pinned to a chapter.
type Technique struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// Category groups techniques. ParentID is empty for top-level categories.
type Category struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// Proposal is a pending canon change.
type Proposal struct {
	ID     string `json:"proposal_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Snapshot is everything the palette catalog is built from.
type Snapshot struct {
	Project    string
	Chapter    string
	Characters []Card
	WorldCards []Card
	Styles     []Card
	Outlines   []Card
	Blueprints []Blueprint
	Chapters   []string
	Proposals  []Proposal
	Techniques []Technique
	Categories []Category
	LoadedAt   time.Time
}

// CategoryPath returns "parent/child" for nested categories.
func (s Snapshot) CategoryPath(c Category) string {
	self := c.Title
	if self == "" {
		self = c.Name
	}
	if c.ParentID == "" {
		return self
	}
	for _, p := range s.Categories {
		if p.ID == c.ParentID {
			parent := p.Title
			if parent == "" {
				parent = p.Name
			}
			return parent + "/" + self
		}
	}
	return self
}
