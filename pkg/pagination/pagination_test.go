package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, target string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		target string
		limit  int
		offset int
	}{
		{"/", DefaultLimit, 0},
		{"/?limit=50&offset=10", 50, 10},
		{"/?limit=500", MaxLimit, 0},
		{"/?limit=-3&offset=-5", DefaultLimit, 0},
		{"/?limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tt := range tests {
		p := paramsFor(t, tt.target)
		if p.Limit != tt.limit || p.Offset != tt.offset {
			t.Errorf("%s: expected %d/%d, got %d/%d", tt.target, tt.limit, tt.offset, p.Limit, p.Offset)
		}
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]string{"a", "b"}, 50, 20, 0)
	if resp.Total != 50 || resp.Limit != 20 || resp.Offset != 0 {
		t.Errorf("unexpected response fields: %+v", resp)
	}
	if !resp.HasMore {
		t.Error("expected has_more true")
	}
	if resp.Links != nil {
		t.Error("expected no links by default")
	}

	last := NewResponse(nil, 50, 20, 40)
	if last.HasMore {
		t.Error("expected has_more false on last page")
	}
}

func TestResponse_WithLinks(t *testing.T) {
	first := NewResponse(nil, 45, 20, 0).WithLinks("/api/v1/assessments")
	if first.Links.Self != "/api/v1/assessments?limit=20&offset=0" {
		t.Errorf("unexpected self link %q", first.Links.Self)
	}
	if first.Links.Next != "/api/v1/assessments?limit=20&offset=20" {
		t.Errorf("unexpected next link %q", first.Links.Next)
	}
	if first.Links.Previous != "" {
		t.Errorf("expected no previous link, got %q", first.Links.Previous)
	}

	last := NewResponse(nil, 45, 20, 40).WithLinks("/x")
	if last.Links.Next != "" {
		t.Errorf("expected no next link, got %q", last.Links.Next)
	}
	if last.Links.Previous != "/x?limit=20&offset=20" {
		t.Errorf("unexpected previous link %q", last.Links.Previous)
	}
}

func TestParams_Offsets(t *testing.T) {
	p := Params{Limit: 20, Offset: 10}
	if p.NextOffset() != 30 {
		t.Errorf("expected next 30, got %d", p.NextOffset())
	}
	if p.PreviousOffset() != 0 {
		t.Errorf("expected previous clamped to 0, got %d", p.PreviousOffset())
	}
	if !p.HasPrevious() {
		t.Error("expected HasPrevious true")
	}
	if p.HasNext(30) {
		t.Error("expected HasNext false when page reaches total")
	}
}
