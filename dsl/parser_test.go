package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/pinned/dsl"
)

const sampleDSL = `
scene Card v1 {
  meta {
    title: "Card"
    keywords: [
      "layout"
      "pins"
    ]
  }

  resources {
    color Accent = #0F62FE
    style Panel { fill: Accent stroke: #333333 stroke-width: 0.3mm }
  }

  // 画框尺寸
  frame 200mm 200mm name Main {
    pinned left 20mm right 30mm top 10% height 50mm {
      box Panel
    }
    pinned width 80mm h-middle 0.5 bottom ${margin} height -5mm {
      box fill #EEE {
        pinned left 1mm size 2mm
      }
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Card" {
		t.Fatalf("expected scene name Card, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	kinds := []string{doc.Sections[0].Kind(), doc.Sections[1].Kind(), doc.Sections[2].Kind()}
	if strings.Join(kinds, ",") != "meta,resources,frame" {
		t.Fatalf("unexpected section kinds: %v", kinds)
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" || string(*title.Value.String) != "Card" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", keywords)
	}

	resources := doc.Sections[1].Resources.Block.Statements
	color := resources[0].Command
	if color == nil || color.Name != "color" || len(color.Args) != 3 {
		t.Fatalf("unexpected color command: %+v", resources[0])
	}
	if color.Args[2].Type != "Color" || color.Args[2].Value != "#0F62FE" {
		t.Fatalf("color value should lex as one Color token, got %+v", color.Args[2])
	}
	style := resources[1].Command
	if style == nil || style.Block == nil || len(style.Block.Statements) != 3 {
		t.Fatalf("style should carry 3 assignments, got %+v", resources[1])
	}

	frame := doc.Sections[2].Frame
	if got := tokensToString(frame.Params); got != "200mm 200mm name Main" {
		t.Fatalf("unexpected frame params: %s", got)
	}
	if len(frame.Block.Statements) != 2 {
		t.Fatalf("expected 2 pinned statements, got %d", len(frame.Block.Statements))
	}

	first := frame.Block.Statements[0].Command
	if first == nil || first.Name != "pinned" {
		t.Fatalf("expected pinned command, got %+v", frame.Block.Statements[0])
	}
	if got := tokensToString(first.Args); got != "left 20mm right 30mm top 10% height 50mm" {
		t.Fatalf("unexpected pinned args: %s", got)
	}
	box := first.Block.Statements[0].Command
	if box == nil || box.Name != "box" || box.Args[0].Value != "Panel" {
		t.Fatalf("expected box Panel, got %+v", first.Block.Statements[0])
	}

	second := frame.Block.Statements[1].Command
	if got := tokensToString(second.Args); got != "width 80mm h-middle 0.5 bottom ${margin} height -5mm" {
		t.Fatalf("unexpected args: %s", got)
	}
	if second.Args[5].Type != "Expr" {
		t.Fatalf("placeholder should lex as Expr, got %s", second.Args[5].Type)
	}
	nested := second.Block.Statements[0].Command.Block.Statements[0].Command
	if nested == nil || nested.Name != "pinned" || nested.Block != nil {
		t.Fatalf("expected nested pinned without block, got %+v", nested)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	if _, err := dsl.ParseString(`scene X v1 { page A4 { } }`); err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
