// Package pdf lays rituals out as single-column PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

// Page geometry in points. Text wraps at page width minus both margins.
const (
	margin = 50.0

	titleSize   = 24.0
	headingSize = 14.0
	bodySize    = 12.0
	smallSize   = 10.0

	lineHeight = 1.35
	fontFamily = "Helvetica"
)

// Options tune output. The zero value produces a compressed Letter page.
type Options struct {
	// Uncompressed leaves content streams readable, which tests rely on.
	Uncompressed bool

	// Now stamps the document dates. Defaults to time.Now.
	Now func() time.Time
}

// Renderer implements ports.DocumentRenderer.
type Renderer struct {
	opts Options
}

// NewRenderer returns a renderer with opts.
func NewRenderer(opts Options) *Renderer {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Renderer{opts: opts}
}

// RenderRitual returns the PDF bytes for ritual.
// Returns a domain.ValidationError when the ritual has no title or paragraph.
func (r *Renderer) RenderRitual(ritual *domain.Ritual) ([]byte, error) {
	if !ritual.IsComplete() {
		return nil, domain.NewValidationError("ritual", "title and paragraph are required")
	}

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCompression(!r.opts.Uncompressed)
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(ritual.Ritual.Title, true)
	doc.SetCreator("ritual-service", true)

	now := r.opts.Now()
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)

	w := &writer{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	w.doc.AddPage()
	w.layout(ritual)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// writer tracks the document and its UTF-8 to cp1252 translator.
type writer struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) width() float64 {
	pageW, _ := w.doc.GetPageSize()

	return pageW - 2*margin
}

func (w *writer) text(style string, size float64, s string) {
	if strings.TrimSpace(s) == "" {
		return
	}

	w.doc.SetFont(fontFamily, style, size)
	w.doc.MultiCell(w.width(), size*lineHeight, w.tr(s), "", "L", false)
}

func (w *writer) heading(s string) {
	w.doc.Ln(headingSize)
	w.text("B", headingSize, s)
	w.doc.Ln(headingSize / 3)
}

func (w *writer) layout(r *domain.Ritual) {
	w.text("", titleSize, r.Ritual.Title)

	if r.SunSign != "" && r.SunSign != domain.SignUnknown {
		w.text("I", smallSize, fmt.Sprintf("%s · %s", r.SunSign, r.Element))
	}

	if r.NameMeaning.OverallVibe != "" {
		w.text("I", smallSize, r.NameMeaning.OverallVibe)
	}

	w.doc.Ln(bodySize)
	w.text("", bodySize, r.Ritual.Paragraph)

	if r.Ritual.Mantra != "" {
		w.heading("Mantra")
		w.text("I", bodySize+2, fmt.Sprintf("“%s”", r.Ritual.Mantra))
	}

	if r.Ritual.PhysicalAction != "" {
		w.heading("Physical action")
		w.text("", bodySize, r.Ritual.PhysicalAction)
	}

	w.timing(r.Ritual.Timing)
	w.tarot(r.Tarot)
	w.correspondences(r.Ritual.Correspondences)

	if r.Reflection.JournalPrompt != "" || r.Reflection.CosmicDirection != "" {
		w.heading("Reflection")
		w.text("", bodySize, r.Reflection.JournalPrompt)
		w.text("I", bodySize, r.Reflection.CosmicDirection)
	}
}

func (w *writer) timing(t domain.RitualTiming) {
	rows := [][2]string{
		{"Lunar phase", t.LunarPhase},
		{"When", t.ExactDate},
		{"Time of day", t.TimeOfDay},
		{"Avoid", t.WhatNotToDo},
	}

	if !anyValue(rows) {
		return
	}

	w.heading("Timing")
	w.table(rows)
}

func (w *writer) tarot(s domain.TarotSpread) {
	cards := make([]domain.TarotCard, 0, 2)
	for _, c := range []domain.TarotCard{s.Card1, s.Card2} {
		if c.Name != "" {
			cards = append(cards, c)
		}
	}

	if len(cards) == 0 {
		return
	}

	w.heading("Tarot")

	for _, c := range cards {
		label := c.Name
		if c.Position != "" {
			label += " (" + c.Position + ")"
		}

		w.text("B", bodySize, label)
		w.text("I", smallSize, c.Role)
		w.text("", bodySize, c.Meaning)
		w.doc.Ln(bodySize / 2)
	}
}

func (w *writer) correspondences(c domain.Correspondences) {
	rows := [][2]string{
		{"Color", c.Color},
		{"Element", c.Element},
		{"Crystal", c.Crystal},
		{"Herb", c.Herb},
		{"Candle", c.Candle},
		{"Day", c.Day},
		{"Direction", c.Direction},
		{"Planet", c.Planet},
	}

	if !anyValue(rows) {
		return
	}

	w.heading("Correspondences")
	w.table(rows)
}

// table draws label/value rows, skipping empty values.
func (w *writer) table(rows [][2]string) {
	labelW := w.width() * 0.3
	h := bodySize * lineHeight

	for _, row := range rows {
		if row[1] == "" {
			continue
		}

		w.doc.SetFont(fontFamily, "B", bodySize)
		w.doc.CellFormat(labelW, h, w.tr(row[0]), "", 0, "L", false, 0, "")
		w.doc.SetFont(fontFamily, "", bodySize)
		w.doc.MultiCell(w.width()-labelW, h, w.tr(row[1]), "", "L", false)
	}
}

func anyValue(rows [][2]string) bool {
	for _, row := range rows {
		if row[1] != "" {
			return true
		}
	}

	return false
}
