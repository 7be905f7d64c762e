package presets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pottery-cost/core/session"
)

func TestBuiltIn(t *testing.T) {
	list := BuiltIn()
	if len(list) != 15 {
		t.Fatalf("len = %d, want 15", len(list))
	}
	p, ok := Find(list, "pie plate")
	if !ok || p.ClayLbWet != 3.25 || p.DefaultGlazeG != 120 || p.Notes != "3¼–3½ lb" {
		t.Errorf("pie plate = %+v, %v", p, ok)
	}
	if _, ok := Find(list, "teapot"); ok {
		t.Error("teapot should not exist")
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Preset
		wantErr bool
	}{
		{
			name:  "all columns",
			input: "Form,Clay_lb_wet,Default_glaze_g,Notes\nMug (12 oz),0.9,40,straight\n",
			want:  []Preset{{Form: "Mug (12 oz)", ClayLbWet: 0.9, DefaultGlazeG: 40, Notes: "straight"}},
		},
		{
			name:  "missing notes and bad number",
			input: "form, clay_lb_wet ,Default_glaze_g\nBowl,abc,55\n,1,2\n",
			want:  []Preset{{Form: "Bowl", DefaultGlazeG: 55}},
		},
		{
			name:  "short row",
			input: "Form,Clay_lb_wet,Default_glaze_g,Notes\nJar,1.5\n",
			want:  []Preset{{Form: "Jar", ClayLbWet: 1.5}},
		},
		{
			name:    "no form column",
			input:   "Name,Weight\nMug,1\n",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	s := session.Default()
	p, _ := Find(BuiltIn(), "Bowl (large)")
	Apply(p, &s)
	if s.Inputs.ClayWeightPerPieceLb != 4.5 || s.RecipeGramsPerPiece != 140 {
		t.Errorf("clay=%v grams=%v", s.Inputs.ClayWeightPerPieceLb, s.RecipeGramsPerPiece)
	}
}

func TestLoaderRemoteAndCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("Form,Clay_lb_wet,Default_glaze_g,Notes\nTumbler,1.1,42,\n"))
	}))
	defer srv.Close()

	l := NewLoader(LoaderConfig{URL: srv.URL, TTL: time.Minute})
	list, src := l.Load(context.Background())
	if src != SourceRemote || len(list) != 1 || list[0].Form != "Tumbler" {
		t.Fatalf("first load = %+v from %s", list, src)
	}
	if _, src := l.Load(context.Background()); src != SourceCache {
		t.Errorf("second load source = %s", src)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}

	l.Invalidate()
	if _, src := l.Load(context.Background()); src != SourceRemote {
		t.Errorf("after invalidate source = %s", src)
	}
}

func TestLoaderFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"no form column", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("a,b\n1,2\n")) }},
		{"header only", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("Form\n")) }},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			l := NewLoader(LoaderConfig{URL: srv.URL, Timeout: 100 * time.Millisecond})
			list, src := l.Load(context.Background())
			if src != SourceBuiltIn || len(list) != 15 {
				t.Errorf("got %d presets from %s", len(list), src)
			}
		})
	}
}

func TestLoaderWithoutURL(t *testing.T) {
	list, src := NewLoader(LoaderConfig{}).Load(context.Background())
	if src != SourceBuiltIn || len(list) != 15 {
		t.Errorf("got %d presets from %s", len(list), src)
	}
}
