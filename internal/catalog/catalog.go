package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// QuestionType classifies how a survey answer is captured.
type QuestionType string

const (
	TypeRating       QuestionType = "rating_1_5"
	TypeShortText    QuestionType = "short_text"
	TypeLongText     QuestionType = "long_text"
	TypeSingleSelect QuestionType = "single_select"
)

func (t QuestionType) valid() bool {
	switch t {
	case TypeRating, TypeShortText, TypeLongText, TypeSingleSelect:
		return true
	}
	return false
}

// Question is a static survey question definition.
type Question struct {
	ID   int          `yaml:"id" json:"id"`
	Text string       `yaml:"text" json:"text"`
	Type QuestionType `yaml:"type" json:"type"`
}

// Category is a named group of question IDs compared against each other.
type Category struct {
	Name        string `yaml:"name" json:"name"`
	QuestionIDs []int  `yaml:"question_ids" json:"question_ids"`
}

// Catalog is the immutable question set the analyses resolve responses against.
type Catalog struct {
	questions  []Question
	byID       map[int]Question
	categories []Category
}

var (
	ErrDuplicateQuestion = errors.New("duplicate question id")
	ErrInvalidType       = errors.New("invalid question type")
	ErrUnknownMember     = errors.New("category references unknown question")
)

type fileFormat struct {
	Questions  []Question `yaml:"questions"`
	Categories []Category `yaml:"categories"`
}

// New validates the definitions and builds a Catalog.
func New(questions []Question, categories []Category) (*Catalog, error) {
	c := &Catalog{
		questions:  make([]Question, 0, len(questions)),
		byID:       make(map[int]Question, len(questions)),
		categories: make([]Category, 0, len(categories)),
	}

	for _, q := range questions {
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateQuestion, q.ID)
		}
		if !q.Type.valid() {
			return nil, fmt.Errorf("%w: %q (question %d)", ErrInvalidType, q.Type, q.ID)
		}
		c.byID[q.ID] = q
		c.questions = append(c.questions, q)
	}

	for _, cat := range categories {
		for _, id := range cat.QuestionIDs {
			if _, ok := c.byID[id]; !ok {
				return nil, fmt.Errorf("%w: %q -> %d", ErrUnknownMember, cat.Name, id)
			}
		}
		ids := append([]int(nil), cat.QuestionIDs...)
		c.categories = append(c.categories, Category{Name: cat.Name, QuestionIDs: ids})
	}

	return c, nil
}

// LoadFile reads a YAML catalog. Changing questions means shipping a new file,
// never migrating stored answers.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	return New(f.Questions, f.Categories)
}

// Lookup resolves a question id.
func (c *Catalog) Lookup(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Questions returns every question in definition order.
func (c *Catalog) Questions() []Question {
	return append([]Question(nil), c.questions...)
}

// ByType returns the questions of one type in definition order.
func (c *Catalog) ByType(t QuestionType) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Type == t {
			out = append(out, q)
		}
	}
	return out
}

// IDsByType returns the set of ids of one type.
func (c *Catalog) IDsByType(t QuestionType) map[int]struct{} {
	ids := make(map[int]struct{})
	for _, q := range c.questions {
		if q.Type == t {
			ids[q.ID] = struct{}{}
		}
	}
	return ids
}

// Categories returns the category definitions in definition order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, QuestionIDs: append([]int(nil), cat.QuestionIDs...)}
	}
	return out
}

// SortedIDs returns all question ids ascending.
func (c *Catalog) SortedIDs() []int {
	ids := make([]int, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
