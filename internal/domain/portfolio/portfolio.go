package portfolio

import (
	"context"
	"time"

	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

type Skill struct {
	Name   string `json:"name"`
	Level  string `json:"level"`
	Rating *int   `json:"rating,omitempty"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repoUrl"`
	DemoURL     string   `json:"demoUrl"`
	TechStack   []string `json:"techStack"`
	ImageURL    *string  `json:"imageUrl"`
}

type Experience struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Duration string `json:"duration"`
	Details  string `json:"details"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Certification struct {
	Title    string  `json:"title"`
	Year     string  `json:"year"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type UISettings struct {
	BaseRem    float64            `json:"baseRem"`
	SectionRem map[string]float64 `json:"sectionRem"`
}

// Document is one owner identity's portfolio. Exactly one document may exist
// per owner id in each store.
type Document struct {
	OwnerID        string          `json:"ownerId"`
	Type           string          `json:"type"`
	Profile        Profile         `json:"profile"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
	ResumePDFURL   string          `json:"resumePdfUrl"`
	UISettings     UISettings      `json:"uiSettings"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (d *Document) Validate() error {
	if d.OwnerID == "" {
		return apperror.NewInvalidInput("ownerId is required", nil)
	}
	if d.Profile.Name == "" {
		return apperror.NewInvalidInput("profile.name is required", nil)
	}
	return nil
}

// Clone returns a deep copy so callers can hand documents out of the mirror
// without sharing slice or map backing storage.
func (d *Document) Clone() *Document {
	out := *d
	out.Skills = cloneSlice(d.Skills)
	out.Projects = make([]Project, len(d.Projects))
	for i, p := range d.Projects {
		out.Projects[i] = p
		out.Projects[i].TechStack = append([]string(nil), p.TechStack...)
	}
	out.Experience = cloneSlice(d.Experience)
	out.Education = cloneSlice(d.Education)
	out.Certifications = cloneSlice(d.Certifications)
	if d.UISettings.SectionRem != nil {
		out.UISettings.SectionRem = make(map[string]float64, len(d.UISettings.SectionRem))
		for k, v := range d.UISettings.SectionRem {
			out.UISettings.SectionRem[k] = v
		}
	}
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append([]T(nil), in...)
}

// Partial is a top-level field mask for shallow-merge updates. A field takes
// part in a merge iff it is non-nil; absent fields leave the existing value
// untouched. Nested lists are replaced wholesale, never merged element-wise.
type Partial struct {
	Type           *string          `json:"type,omitempty"`
	Profile        *Profile         `json:"profile,omitempty"`
	Skills         *[]Skill         `json:"skills,omitempty"`
	Projects       *[]Project       `json:"projects,omitempty"`
	Experience     *[]Experience    `json:"experience,omitempty"`
	Education      *[]Education     `json:"education,omitempty"`
	Certifications *[]Certification `json:"certifications,omitempty"`
	ResumePDFURL   *string          `json:"resumePdfUrl,omitempty"`
	UISettings     *UISettings      `json:"uiSettings,omitempty"`
}

// Apply shallow-merges the partial over base and returns the result. Base is
// not mutated. This is the single merge rule shared by the mirror and the
// admin-to-customer projection.
func (p Partial) Apply(base *Document) *Document {
	out := base.Clone()
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Profile != nil {
		out.Profile = *p.Profile
	}
	if p.Skills != nil {
		out.Skills = append([]Skill(nil), (*p.Skills)...)
	}
	if p.Projects != nil {
		out.Projects = append([]Project(nil), (*p.Projects)...)
	}
	if p.Experience != nil {
		out.Experience = append([]Experience(nil), (*p.Experience)...)
	}
	if p.Education != nil {
		out.Education = append([]Education(nil), (*p.Education)...)
	}
	if p.Certifications != nil {
		out.Certifications = append([]Certification(nil), (*p.Certifications)...)
	}
	if p.ResumePDFURL != nil {
		out.ResumePDFURL = *p.ResumePDFURL
	}
	if p.UISettings != nil {
		out.UISettings = *p.UISettings
	}
	out.UpdatedAt = time.Now().UTC()
	return out
}

// IsEmpty reports whether the partial names no top-level field at all.
func (p Partial) IsEmpty() bool {
	return p.Type == nil && p.Profile == nil && p.Skills == nil &&
		p.Projects == nil && p.Experience == nil && p.Education == nil &&
		p.Certifications == nil && p.ResumePDFURL == nil && p.UISettings == nil
}

// Repository is the durable portfolio store.
type Repository interface {
	FindByOwnerID(ctx context.Context, ownerID string) (*Document, error)
	ListAll(ctx context.Context) ([]*Document, error)
	Upsert(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, ownerID string) error
}
