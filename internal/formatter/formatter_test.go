package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/melodex/internal/models"
)

func sampleDetail() *models.PlaylistDetail {
	return &models.PlaylistDetail{
		ID:       42,
		Name:     "Road Trip",
		IsPublic: true,
		UserID:   1,
		UserName: "Ana",
		Musics: []models.PlaylistTrack{
			{ID: "m1", Name: "Roygbiv", Band: "Boards of Canada", Genre: "IDM", Position: 1},
			{ID: "m2", Name: "Teardrop", Band: "Massive Attack", Genre: "Trip Hop", Position: 2},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleDetail())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Position,ID,Name,Band,Genre") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,m1,Roygbiv,Boards of Canada,IDM") {
			t.Errorf("CSV missing first track row, got: %s", output)
		}
		if !strings.Contains(output, "2,m2,Teardrop,Massive Attack,Trip Hop") {
			t.Errorf("CSV missing second track row, got: %s", output)
		}
	})

	t.Run("MusicsToCSV", func(t *testing.T) {
		musics := []models.Music{
			{ID: "m1", Name: "Roygbiv", Band: "Boards of Canada", Genre: "IDM", LikesCount: 3, IsLiked: true},
		}

		data, err := MusicsToCSV(musics)
		if err != nil {
			t.Fatalf("MusicsToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "ID,Name,Band,Genre,Likes,Liked") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "m1,Roygbiv,Boards of Canada,IDM,3,true") {
			t.Errorf("CSV missing track row, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleDetail(), "cover.jpg")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Road Trip") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "![Cover](cover.jpg)") {
			t.Errorf("Markdown missing cover, got: %s", output)
		}
		if !strings.Contains(output, "**Owner**: Ana") {
			t.Errorf("Markdown missing owner, got: %s", output)
		}
		if !strings.Contains(output, "**Visibility**: Public") {
			t.Errorf("Markdown missing visibility, got: %s", output)
		}
		if !strings.Contains(output, "1. Boards of Canada - Roygbiv [IDM]") {
			t.Errorf("Markdown missing track line, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown Without Cover", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleDetail(), "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if strings.Contains(string(data), "![Cover]") {
			t.Error("Markdown should omit the cover reference without an image")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleDetail())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Playlist: Road Trip") {
			t.Errorf("text missing playlist name, got: %s", output)
		}
		if !strings.Contains(output, "Tracks: 2") {
			t.Errorf("text missing track count, got: %s", output)
		}
		if !strings.Contains(output, "2. Massive Attack - Teardrop") {
			t.Errorf("text missing track line, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(sampleDetail())
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var meta models.Playlist
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatalf("metadata is not valid JSON: %v", err)
		}
		if meta.ID != 42 || meta.Name != "Road Trip" || meta.MusicCount != 2 {
			t.Errorf("unexpected metadata %+v", meta)
		}
	})
}

func TestWriteExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "roadtrip")

		result, err := WriteCSVExport(sampleDetail(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if _, err := os.Stat(result.TracksFile); err != nil {
			t.Errorf("tracks file missing: %v", err)
		}
		if _, err := os.Stat(result.MetadataFile); err != nil {
			t.Errorf("metadata file missing: %v", err)
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "export")

		result, err := WriteMarkdownExport(sampleDetail(), dir, "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if result.Directory != dir {
			t.Errorf("unexpected directory %s", result.Directory)
		}
		readme := filepath.Join(dir, "README.md")
		if _, err := os.Stat(readme); err != nil {
			t.Errorf("README missing: %v", err)
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roadtrip.txt")

		written, err := WriteTextExport(sampleDetail(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("text file missing: %v", err)
		}
	})
}
