package domain

import (
	"encoding/json"
	"strings"
)

// PhotoKind tells which representation of an image a Photo carries.
type PhotoKind string

const (
	// PhotoInline holds a freshly uploaded data: URL that has not been moved to the asset folder yet.
	PhotoInline PhotoKind = "inline"
	// PhotoRef holds an asset folder id or an external URL.
	PhotoRef PhotoKind = "ref"
)

const dataURLPrefix = "data:"

// Photo is either an inline payload or a reference, never both.
// On the wire and in storage it is a single string; the kind is recovered from the data: prefix.
type Photo struct {
	Kind  PhotoKind
	Value string
}

// ParsePhoto classifies a raw string. Empty input yields the zero Photo.
func ParsePhoto(raw string) Photo {
	switch {
	case raw == "":
		return Photo{}
	case strings.HasPrefix(raw, dataURLPrefix):
		return Photo{Kind: PhotoInline, Value: raw}
	default:
		return Photo{Kind: PhotoRef, Value: raw}
	}
}

func InlinePhoto(dataURL string) Photo { return Photo{Kind: PhotoInline, Value: dataURL} }

func RefPhoto(id string) Photo { return Photo{Kind: PhotoRef, Value: id} }

func (p Photo) IsZero() bool   { return p.Value == "" }
func (p Photo) IsInline() bool { return p.Kind == PhotoInline }

func (p Photo) String() string { return p.Value }

func (p Photo) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Value)
}

func (p *Photo) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ParsePhoto(raw)
	return nil
}

// ParsePhotos classifies each raw string, dropping empties.
func ParsePhotos(raw []string) []Photo {
	out := make([]Photo, 0, len(raw))
	for _, r := range raw {
		if p := ParsePhoto(r); !p.IsZero() {
			out = append(out, p)
		}
	}
	return out
}
