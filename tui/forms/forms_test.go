package forms

import (
	"testing"

	"github.com/user/showcut-cli/cue"
)

func TestCameraOptions(t *testing.T) {
	opts := CameraOptions()
	if len(opts) != cue.PaletteSize {
		t.Fatalf("options = %d, want %d", len(opts), cue.PaletteSize)
	}
	if opts[0].Value != 1 || opts[len(opts)-1].Value != cue.PaletteSize {
		t.Errorf("range = %d..%d", opts[0].Value, opts[len(opts)-1].Value)
	}
	if opts[4].Key != "Camera 5" {
		t.Errorf("label = %q", opts[4].Key)
	}
}

func TestMetadataResult_ParsedNum(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		isNil   bool
		wantErr bool
	}{
		{"", 0, true, false},
		{"  ", 0, true, false},
		{" 12 ", 12, false, false},
		{"twelve", 0, true, true},
	}
	for _, tt := range tests {
		got, err := (&MetadataResult{Num: tt.in}).ParsedNum()
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsedNum(%q) err = %v", tt.in, err)
			continue
		}
		if (got == nil) != tt.isNil || (got != nil && *got != tt.want) {
			t.Errorf("ParsedNum(%q) = %v", tt.in, got)
		}
	}
}

func TestNewForms_BindCurrentValues(t *testing.T) {
	c := cue.Cue{ID: "a", EndTime: 5, Camera: 7, Description: "wide"}

	var desc string
	if NewDescriptionForm(c, &desc) == nil || desc != "wide" {
		t.Errorf("description = %q", desc)
	}
	var camera int
	if NewCameraForm(c, &camera) == nil || camera != 7 {
		t.Errorf("camera = %d", camera)
	}

	num := 3
	var meta MetadataResult
	NewMetadataForm(&cue.Document{Title: "Roll", Num: &num}, &meta)
	if meta.Title != "Roll" || meta.Num != "3" {
		t.Errorf("metadata = %+v", meta)
	}
}
