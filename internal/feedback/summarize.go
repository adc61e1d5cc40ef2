package feedback

import (
	"fmt"
	"strings"
)

// Normalizer turns raw submissions into normalized feedback using an immutable Config.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	cfg *Config
}

// NewNormalizer returns a Normalizer using cfg, or the defaults when cfg is nil.
func NewNormalizer(cfg *Config) *Normalizer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Normalizer{cfg: cfg}
}

type classified struct {
	ratings  []Field
	booleans []Field
	texts    []Field
}

func (n *Normalizer) classify(fields map[string]Scalar) classified {
	var out classified
	for _, name := range sortedKeys(fields) {
		field, ok := Classify(n.cfg, name, fields[name])
		if !ok {
			continue
		}

		switch field.Kind {
		case KindRating:
			field.Rating = clamp(field.Rating, 0, maxInternalRating)
			out.ratings = append(out.ratings, field)
		case KindBoolean:
			out.booleans = append(out.booleans, field)
		case KindText:
			out.texts = append(out.texts, field)
		}
	}
	return out
}

// Summarize converts the fields of one section into a FeedbackSection.
func (n *Normalizer) Summarize(sectionKey string, fields map[string]Scalar) FeedbackSection {
	c := n.classify(fields)
	title := n.Title(sectionKey)

	internal := float64(defaultSectionRating)
	if len(c.ratings) > 0 {
		var sum float64
		for _, field := range c.ratings {
			sum += field.Rating
		}
		internal = sum / float64(len(c.ratings))
	}
	rating := toFiveStar(internal)

	notes := make([]string, 0, len(c.texts))
	for _, field := range c.texts {
		notes = append(notes, fmt.Sprintf("%s: %s", fieldLabel(field.Name), field.Text))
	}
	note := strings.Join(notes, ". ")
	if note == "" {
		note = fmt.Sprintf("Assessment of candidate's %s capabilities.", strings.ToLower(title))
	}

	strengths := []string{}
	weaknesses := []string{}
	for _, field := range c.ratings {
		switch {
		case field.Rating >= strengthThreshold:
			strengths = append(strengths, fieldLabel(field.Name))
		case field.Rating <= weaknessThreshold:
			weaknesses = append(weaknesses, fieldLabel(field.Name))
		}
	}
	for _, field := range c.booleans {
		if field.Flag {
			strengths = append(strengths, fieldLabel(field.Name))
			continue
		}
		weaknesses = append(weaknesses, "Needs improvement in "+strings.ToLower(fieldLabel(field.Name)))
	}

	if len(strengths) == 0 {
		strengths = append(strengths, genericStrength)
	}
	if len(weaknesses) == 0 && rating < genericWeaknessBelow {
		weaknesses = append(weaknesses, genericWeakness)
	}

	return FeedbackSection{
		Title:      title,
		Rating:     rating,
		Notes:      note,
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}
}

// Title resolves the display title of a section key.
func (n *Normalizer) Title(sectionKey string) string {
	if title, ok := n.cfg.title(canonicalSection(sectionKey)); ok {
		return title
	}
	if title := humanizeSection(sectionKey); title != "" {
		return title
	}
	return "Section " + canonicalSection(sectionKey)
}

// fieldLabel is the display label of a field. Names that humanize to nothing,
// such as purely numeric ones, keep their raw form.
func fieldLabel(name string) string {
	if label := Humanize(name); label != "" {
		return label
	}
	return "Field " + name
}

// toFiveStar converts the internal 0-10 scale to the 0-5 scale of FeedbackSection.
func toFiveStar(internal float64) float64 {
	return internal / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
