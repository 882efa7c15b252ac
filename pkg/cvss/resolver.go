// Package cvss resolves vulnerability severity scores from raw CVSS inputs.
//
// A record may carry either a numeric base score or a vector string (any of
// CVSS 2.0, 3.0, 3.1 or 4.0). Resolve collapses both forms into a single
// score in [0, 10], or reports "no opinion" when neither is present. Callers
// decide what a missing score means; this package never substitutes defaults.
package cvss

import (
	"fmt"
	"strings"

	gocvss20 "github.com/pandatix/go-cvss/20"
	gocvss30 "github.com/pandatix/go-cvss/30"
	gocvss31 "github.com/pandatix/go-cvss/31"
	gocvss40 "github.com/pandatix/go-cvss/40"
)

// Resolve returns the effective severity for a vulnerability record.
//
// An explicit numeric score wins over a vector. A nil score with an empty
// vector returns (nil, nil): the record simply has no severity opinion.
// Scores outside [0, 10] and unparsable vectors are reported as errors with
// a nil score so the caller can surface them without losing the record.
func Resolve(score *float64, vector string) (*float64, error) {
	if score != nil {
		if *score < 0.0 || *score > 10.0 {
			return nil, fmt.Errorf("cvss score %.2f outside valid range [0.0, 10.0]", *score)
		}
		s := *score
		return &s, nil
	}

	if vector == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(vector, "CVSS:4.0"):
		v, err := gocvss40.ParseVector(vector)
		if err != nil {
			return nil, fmt.Errorf("invalid CVSS v4.0 vector %q: %w", vector, err)
		}
		s := v.Score()
		return &s, nil

	case strings.HasPrefix(vector, "CVSS:3.1"):
		v, err := gocvss31.ParseVector(vector)
		if err != nil {
			return nil, fmt.Errorf("invalid CVSS v3.1 vector %q: %w", vector, err)
		}
		s := v.BaseScore()
		return &s, nil

	case strings.HasPrefix(vector, "CVSS:3.0"):
		v, err := gocvss30.ParseVector(vector)
		if err != nil {
			return nil, fmt.Errorf("invalid CVSS v3.0 vector %q: %w", vector, err)
		}
		s := v.BaseScore()
		return &s, nil

	default:
		// CVSS v2.0 vectors carry no version prefix
		v, err := gocvss20.ParseVector(vector)
		if err != nil {
			return nil, fmt.Errorf("invalid CVSS vector %q: %w", vector, err)
		}
		s := v.BaseScore()
		return &s, nil
	}
}
