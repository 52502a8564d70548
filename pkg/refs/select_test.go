package refs

import (
	"errors"
	"testing"
)

func TestShouldRun(t *testing.T) {
	tests := []struct {
		name   string
		only   []string
		except []string
		ref    string
		tag    bool
		want   bool
	}{
		{
			name: "no filters always runs",
			ref:  "master",
			want: true,
		},
		{
			name: "no filters runs for tags too",
			ref:  "v1.0",
			tag:  true,
			want: true,
		},
		{
			name: "only literal match",
			only: []string{"master"},
			ref:  "master",
			want: true,
		},
		{
			name: "only literal no match",
			only: []string{"master"},
			ref:  "develop",
			want: false,
		},
		{
			name: "only empty list excludes everything",
			only: []string{},
			ref:  "master",
			want: false,
		},
		{
			name: "only tags keyword with tag ref",
			only: []string{"tags"},
			ref:  "v1.0",
			tag:  true,
			want: true,
		},
		{
			name: "only tags keyword with branch ref",
			only: []string{"tags"},
			ref:  "master",
			want: false,
		},
		{
			name: "only branches keyword with branch ref",
			only: []string{"branches"},
			ref:  "master",
			want: true,
		},
		{
			name: "only branches keyword with tag ref",
			only: []string{"branches"},
			ref:  "master",
			tag:  true,
			want: false,
		},
		{
			name: "only regex match",
			only: []string{"/^v.*/"},
			ref:  "v1.0",
			tag:  true,
			want: true,
		},
		{
			name: "only regex no match",
			only: []string{"/^v.*/"},
			ref:  "dev",
			want: false,
		},
		{
			name:   "except literal match excludes",
			except: []string{"master"},
			ref:    "master",
			want:   false,
		},
		{
			name:   "except literal no match runs",
			except: []string{"master"},
			ref:    "develop",
			want:   true,
		},
		{
			name:   "except empty list runs everything",
			except: []string{},
			ref:    "master",
			want:   true,
		},
		{
			name:   "except tags keyword excludes any tag",
			except: []string{"tags"},
			ref:    "anything-at-all",
			tag:    true,
			want:   false,
		},
		{
			name:   "except tags keyword keeps branches",
			except: []string{"tags"},
			ref:    "master",
			want:   true,
		},
		{
			name:   "except branches keyword excludes branches",
			except: []string{"branches"},
			ref:    "master",
			want:   false,
		},
		{
			name:   "except regex match excludes",
			except: []string{"/^deploy-/"},
			ref:    "deploy-prod",
			want:   false,
		},
		{
			name:   "only wins when both filters declared",
			only:   []string{"master"},
			except: []string{"master"},
			ref:    "master",
			want:   true,
		},
		{
			name:   "only wins even when it excludes",
			only:   []string{"develop"},
			except: []string{"nothing"},
			ref:    "master",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShouldRun(tt.only, tt.except, tt.ref, tt.tag)
			if err != nil {
				t.Fatalf("ShouldRun returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldRun(%v, %v, %q, %v) = %v, want %v",
					tt.only, tt.except, tt.ref, tt.tag, got, tt.want)
			}
		})
	}
}

func TestShouldRunMalformedRegex(t *testing.T) {
	var patternErr *PatternError

	_, err := ShouldRun([]string{"/*bad/"}, nil, "master", false)
	if !errors.As(err, &patternErr) {
		t.Errorf("expected *PatternError from only filter, got %v", err)
	}

	_, err = ShouldRun(nil, []string{"/*bad/"}, "master", false)
	if !errors.As(err, &patternErr) {
		t.Errorf("expected *PatternError from except filter, got %v", err)
	}
}
