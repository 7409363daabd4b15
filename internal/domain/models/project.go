package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// LocalizedText хранит строку на каждом поддерживаемом языке сайта
type LocalizedText struct {
	EN string `json:"en"`
	SI string `json:"si"`
	TA string `json:"ta"`
}

func (t LocalizedText) IsEmpty() bool {
	return t.EN == "" && t.SI == "" && t.TA == ""
}

type Stat struct {
	Number string        `json:"number"`
	Label  LocalizedText `json:"label"`
}

// Project is a portfolio item. The same shape is written to the public mirror.
//
// A project read from disk remembers its original record: on write only the
// fields that were changed are patched into it, so unknown keys, key order and
// loosely typed legacy values ("priority": "2") survive a round trip.
type Project struct {
	ID              string         `json:"id"`
	Title           LocalizedText  `json:"title"`
	Summary         LocalizedText  `json:"summary"`
	Category        string         `json:"category"`
	Status          string         `json:"status"`
	Featured        bool           `json:"featured"`
	Priority        int            `json:"priority"`
	MainImage       string         `json:"main_image"`
	GalleryImages   []string       `json:"gallery_images"`
	Tags            []string       `json:"tags"`
	Published       bool           `json:"published"`
	Stat1           Stat           `json:"stat1"`
	Stat2           Stat           `json:"stat2"`
	LongDescription *LocalizedText `json:"longDescription,omitempty"`

	raw []byte
}

// GalleryItem одна картинка в плоской ленте галереи
type GalleryItem struct {
	URL       string   `json:"url"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	ProjectID string   `json:"projectId"`
}

// Images returns the main image (if any) followed by the gallery images.
func (p Project) Images() []string {
	images := make([]string, 0, len(p.GalleryImages)+1)
	if p.MainImage != "" {
		images = append(images, p.MainImage)
	}

	return append(images, p.GalleryImages...)
}

// Extra returns a key of the stored record that has no struct field.
func (p Project) Extra(key string) gjson.Result {
	return gjson.GetBytes(p.raw, gjson.Escape(key))
}

type projectField struct {
	key   string
	value func(p *Project) any
}

// порядок ключей для новых записей
var projectFields = []projectField{
	{"id", func(p *Project) any { return p.ID }},
	{"title", func(p *Project) any { return p.Title }},
	{"summary", func(p *Project) any { return p.Summary }},
	{"category", func(p *Project) any { return p.Category }},
	{"status", func(p *Project) any { return p.Status }},
	{"featured", func(p *Project) any { return p.Featured }},
	{"priority", func(p *Project) any { return p.Priority }},
	{"main_image", func(p *Project) any { return p.MainImage }},
	{"gallery_images", func(p *Project) any { return nonNil(p.GalleryImages) }},
	{"tags", func(p *Project) any { return nonNil(p.Tags) }},
	{"published", func(p *Project) any { return p.Published }},
	{"stat1", func(p *Project) any { return p.Stat1 }},
	{"stat2", func(p *Project) any { return p.Stat2 }},
	{"longDescription", func(p *Project) any { return p.LongDescription }},
}

func (p *Project) UnmarshalJSON(data []byte) error {
	r := gjson.ParseBytes(data)
	if r.Type == gjson.Null {
		return nil
	}

	if !r.IsObject() {
		return fmt.Errorf("project record is not an object: %.40s", data)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}

	*p = decodeProject(r)
	p.raw = buf.Bytes()

	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	out := []byte("{}")

	var orig *Project
	if len(p.raw) > 0 {
		out = append([]byte(nil), p.raw...)
		decoded := decodeProject(gjson.ParseBytes(p.raw))
		orig = &decoded
	}

	for _, f := range projectFields {
		v := f.value(&p)
		if orig != nil && reflect.DeepEqual(v, f.value(orig)) {
			continue
		}

		var err error
		if ld, ok := v.(*LocalizedText); ok && ld == nil {
			if gjson.GetBytes(out, f.key).Exists() {
				out, err = sjson.DeleteBytes(out, f.key)
			}
		} else {
			out, err = setRaw(out, f.key, v)
		}
		if err != nil {
			return nil, fmt.Errorf("project %q field %s: %w", p.ID, f.key, err)
		}
	}

	return out, nil
}

func setRaw(doc []byte, key string, v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return sjson.SetRawBytes(doc, key, bytes.TrimRight(buf.Bytes(), "\n"))
}

// decodeProject reads a record the way the admin form would: numbers and
// strings are accepted for either kind of field.
func decodeProject(r gjson.Result) Project {
	p := Project{
		ID:            r.Get("id").String(),
		Title:         localized(r.Get("title")),
		Summary:       localized(r.Get("summary")),
		Category:      r.Get("category").String(),
		Status:        r.Get("status").String(),
		Featured:      r.Get("featured").Bool(),
		Priority:      int(r.Get("priority").Int()),
		MainImage:     r.Get("main_image").String(),
		GalleryImages: stringList(r.Get("gallery_images")),
		Tags:          stringList(r.Get("tags")),
		Published:     r.Get("published").Bool(),
		Stat1:         stat(r.Get("stat1")),
		Stat2:         stat(r.Get("stat2")),
	}

	if long := r.Get("longDescription"); long.IsObject() {
		text := localized(long)
		p.LongDescription = &text
	}

	return p
}

func localized(r gjson.Result) LocalizedText {
	return LocalizedText{
		EN: r.Get("en").String(),
		SI: r.Get("si").String(),
		TA: r.Get("ta").String(),
	}
}

func stat(r gjson.Result) Stat {
	return Stat{
		Number: r.Get("number").String(),
		Label:  localized(r.Get("label")),
	}
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}

	items := r.Array()
	list := make([]string, 0, len(items))
	for _, item := range items {
		list = append(list, item.String())
	}

	return list
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
