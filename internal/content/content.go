// Package content holds the page copy and widget parameters. The default
// portfolio is embedded; a file on disk can replace it.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

type Portfolio struct {
	Owner      Owner        `yaml:"owner"`
	Nav        []NavLink    `yaml:"nav"`
	Hero       Hero         `yaml:"hero"`
	About      About        `yaml:"about"`
	Experience []Experience `yaml:"experience"`
	Projects   []Project    `yaml:"projects"`
	Skills     Skills       `yaml:"skills"`
	Contact    Contact      `yaml:"contact"`
	Timings    Timings      `yaml:"timings"`
}

type Owner struct {
	Name       string `yaml:"name"`
	Title      string `yaml:"title"`
	Location   string `yaml:"location"`
	Experience string `yaml:"experience"`
	Email      string `yaml:"email"`
}

type NavLink struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

type Hero struct {
	Lines      []string `yaml:"lines"`
	CTA        string   `yaml:"cta"`
	CTATarget  string   `yaml:"ctaTarget"`
	Background string   `yaml:"background"`
}

type About struct {
	Headline    string   `yaml:"headline"`
	Summary     string   `yaml:"summary"`
	YearsActive int      `yaml:"yearsActive"`
	Roles       []string `yaml:"roles"`
	Radar       []string `yaml:"radar"`
}

type Experience struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Graphic  string   `yaml:"graphic"`
	Bullets  []string `yaml:"bullets"`
}

// Experience graphics select the looping card decoration.
const (
	GraphicMotif    = "motif"
	GraphicLaser    = "laser"
	GraphicWaveform = "waveform"
)

// Project kinds select the card widget.
const (
	KindShuffler   = "shuffler"
	KindTypewriter = "typewriter"
	KindScheduler  = "scheduler"
)

type Project struct {
	ID       string   `yaml:"id"`
	Kind     string   `yaml:"kind"`
	Name     string   `yaml:"name"`
	Desc     string   `yaml:"desc"`
	Tags     []string `yaml:"tags"`
	Link     string   `yaml:"link"`
	Features []string `yaml:"features"`
	FullDesc string   `yaml:"fullDesc"`
}

type SkillGroup struct {
	Title  string   `yaml:"title"`
	Skills []string `yaml:"skills"`
}

type Skills struct {
	Groups          []SkillGroup `yaml:"groups"`
	Premise         string       `yaml:"premise"`
	PremiseEmphasis string       `yaml:"premiseEmphasis"`
	Focus           string       `yaml:"focus"`
}

type Link struct {
	Label   string `yaml:"label"`
	URL     string `yaml:"url"`
	Primary bool   `yaml:"primary"`
}

type Contact struct {
	Status  string `yaml:"status"`
	Heading string `yaml:"heading"`
	Blurb   string `yaml:"blurb"`
	Links   []Link `yaml:"links"`
}

// Timings are the widget delays. Zero or omitted values fall back to the
// widget defaults.
type Timings struct {
	TypeDelay      time.Duration `yaml:"typeDelay"`
	DeleteDelay    time.Duration `yaml:"deleteDelay"`
	Pause          time.Duration `yaml:"pause"`
	RotateInterval time.Duration `yaml:"rotateInterval"`
	CountDuration  time.Duration `yaml:"countDuration"`
	TyperDelay     time.Duration `yaml:"typerDelay"`
}

// ValidationError lists every problem found in a portfolio.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid portfolio: " + strings.Join(e.Problems, "; ")
}

// Load returns the embedded portfolio.
func Load() (*Portfolio, error) {
	return Parse(defaultPortfolio)
}

// LoadFile reads a portfolio from path.
func LoadFile(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the fields the widgets depend on.
func (p *Portfolio) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if p.Owner.Name == "" {
		add("owner.name is required")
	}
	if len(p.About.Radar) == 0 {
		add("about.radar needs at least one skill")
	}
	if len(p.About.Roles) == 0 {
		add("about.roles needs at least one role")
	}
	if p.About.YearsActive < 0 {
		add("about.yearsActive must not be negative")
	}
	if len(p.Experience) == 0 {
		add("experience needs at least one entry")
	}
	for i, e := range p.Experience {
		switch e.Graphic {
		case GraphicMotif, GraphicLaser, GraphicWaveform:
		default:
			add("experience[%d].graphic %q is unknown", i, e.Graphic)
		}
	}

	seen := make(map[string]bool)
	for i, pr := range p.Projects {
		switch {
		case pr.ID == "":
			add("projects[%d].id is required", i)
		case seen[pr.ID]:
			add("projects[%d].id %q is duplicated", i, pr.ID)
		}
		seen[pr.ID] = true

		switch pr.Kind {
		case KindShuffler:
			if len(pr.Features) == 0 {
				add("projects[%d] is a shuffler without features", i)
			}
		case KindTypewriter:
			if pr.FullDesc == "" {
				add("projects[%d] is a typewriter without fullDesc", i)
			}
		case KindScheduler:
		default:
			add("projects[%d].kind %q is unknown", i, pr.Kind)
		}
	}

	t := p.Timings
	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"typeDelay", t.TypeDelay},
		{"deleteDelay", t.DeleteDelay},
		{"pause", t.Pause},
		{"rotateInterval", t.RotateInterval},
		{"countDuration", t.CountDuration},
		{"typerDelay", t.TyperDelay},
	} {
		if d.value < 0 {
			add("timings.%s must not be negative", d.name)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Project returns the project with id.
func (p *Portfolio) Project(id string) (Project, bool) {
	for _, pr := range p.Projects {
		if pr.ID == id {
			return pr, true
		}
	}
	return Project{}, false
}

// Words splits text on whitespace, for per-word entrance animation.
func Words(text string) []string {
	return strings.Fields(text)
}
