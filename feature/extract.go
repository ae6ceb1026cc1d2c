package feature

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/PuerkitoBio/goquery"
	"github.com/happyhackingspace/hof/internal/htmlutil"
)

// FeaturePipeline binds a vector column to the rule that fills it.
type FeaturePipeline struct {
	Spec
	Rule    Rule
	Default float64 // used when the rule's anchor is absent
}

// DefaultFeaturePipelines returns the 18 pipelines in vector order.
func DefaultFeaturePipelines() []FeaturePipeline {
	rules := [NumFeatures]Rule{
		CareerLength:    YearsStat{Labels: []string{"Experience:", "Career Length"}},
		Games:           TooltipStat{Tip: "Games"},
		PointsPerGame:   TooltipStat{Tip: "Points"},
		ReboundsPerGame: TooltipStat{Tip: "Total Rebounds"},
		AssistsPerGame:  TooltipStat{Tip: "Assists"},
		PER:             LabeledStat{Tag: "strong", Label: "PER"},
		FieldGoalPct:    TooltipStat{Tip: "Field Goal Percentage"},
		FreeThrowPct:    TooltipStat{Tip: "Free Throw Percentage"},
		WinShares:       SiblingStat{Tag: "span", Label: "WS"},
		AllStar:         AwardCount{Tag: "li", Label: "All Star"},
		AllNBA:          AwardCount{Tag: "li", Label: "All-NBA"},
		AllDefensive:    AwardCount{Tag: "a", Label: "All-Defensive"},
		AllRookie:       ListFlag{Tag: "li", Label: "All-Rookie"},
		MVP:             AwardCount{Tag: "li", Label: "MVP"},
		Championships:   AwardCount{Tag: "a", Label: "NBA Champ"},
		RookieOfTheYear: AttrFlag{Tag: "li", Attr: "data-tip", Substring: "ROY"},
		DefensivePOY:    AwardCount{Tag: "a", Label: "Def. POY"},
		ScoringTitles:   AwardCount{Tag: "a", Label: "Scoring Champ"},
	}

	pipelines := make([]FeaturePipeline, NumFeatures)
	for i, spec := range specs {
		pipelines[i] = FeaturePipeline{Spec: spec, Rule: rules[i]}
	}
	return pipelines
}

// ExtractConfig controls extraction.
type ExtractConfig struct {
	// Strict aborts on absent anchors instead of using the column default.
	Strict bool
	// Pipelines overrides DefaultFeaturePipelines; it must have NumFeatures entries.
	Pipelines []FeaturePipeline
}

// Profile is everything read from one player page.
type Profile struct {
	Name        string   `json:"name"`
	HeadshotURL string   `json:"headshot_url,omitempty"`
	Features    Vector   `json:"features"`
	Missing     []string `json:"missing,omitempty"` // columns filled with their default
}

// ExtractHTML parses raw page bytes and extracts a Profile.
func ExtractHTML(page []byte, config ExtractConfig) (*Profile, error) {
	doc, err := htmlutil.LoadHTMLBytes(page)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return Extract(doc, config)
}

// Extract reads the player's name, headshot and feature vector from doc.
// Absent stats take their column default and are listed in Profile.Missing;
// a malformed stat aborts with a *FieldError.
func Extract(doc *goquery.Document, config ExtractConfig) (*Profile, error) {
	pipelines := config.Pipelines
	if pipelines == nil {
		pipelines = DefaultFeaturePipelines()
	}
	if len(pipelines) != NumFeatures {
		return nil, fmt.Errorf("expected %d feature pipelines, got %d", NumFeatures, len(pipelines))
	}

	slog.Debug("Extracting features", "title", htmlutil.GetPageTitle(doc))

	name, ok := htmlutil.GetNestedText(doc, "h1", "span")
	if !ok {
		return nil, &FieldError{Field: "name", Err: notFound("h1 span")}
	}

	profile := &Profile{
		Name:        name,
		HeadshotURL: htmlutil.GetImageSrc(doc, ".media-item img"),
	}

	for i, p := range pipelines {
		v, err := p.Rule.Extract(doc)
		switch {
		case err == nil:
			if p.Integer {
				v = math.Trunc(v)
			}
			profile.Features[i] = v
		case errors.Is(err, ErrNotFound) && !config.Strict:
			slog.Debug("Feature not on page, using default", "feature", p.Name, "default", p.Default)
			profile.Features[i] = p.Default
			profile.Missing = append(profile.Missing, p.Name)
		default:
			return nil, &FieldError{Field: p.Name, Err: err}
		}
	}

	return profile, nil
}
