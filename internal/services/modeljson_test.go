package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/selahapp/selah-backend/internal/types"
)

func TestParseModelJSON_DecodesObject(t *testing.T) {
	raw := `{"book": "John", "chapter": 3, "verse_start": 16, "translation": "niv", "reason": "comfort"}`
	out, err := ParseModelJSON[bibleVersePayload](raw, types.EngineBibleVerse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Book != "John" || out.Chapter != 3 || out.VerseStart != 16 {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestParseModelJSON_DecodesArrayWithLeadingWhitespace(t *testing.T) {
	raw := "\n  [{\"title\": \"a\"}, {\"title\": \"b\"}]"
	out, err := ParseModelJSON[[]videoPayload](raw, types.EngineVideo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].Title != "a" || out[1].Title != "b" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestParseModelJSON_ProseInListContextDegradesToEmpty(t *testing.T) {
	out, err := ParseModelJSON[[]songPayload]("Sorry, I cannot help with that.", types.EngineSong)
	if err != nil {
		t.Fatalf("expected soft degrade, got error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}

func TestParseModelJSON_ProseInObjectContextFails(t *testing.T) {
	_, err := ParseModelJSON[devotionalPayload]("Here is your devotional: ...", types.EngineDevotional)
	var parseErr *ModelParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ModelParseError, got %v", err)
	}
	if parseErr.Context != types.EngineDevotional {
		t.Fatalf("unexpected context %q", parseErr.Context)
	}
}

func TestParseModelJSON_MalformedJSONFailsEvenForLists(t *testing.T) {
	_, err := ParseModelJSON[[]videoPayload](`[{"title": "a",}]`, types.EngineVideo)
	var parseErr *ModelParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ModelParseError, got %v", err)
	}
	if parseErr.Err == nil {
		t.Fatalf("expected wrapped decode error")
	}
}

func TestParseModelJSON_FragmentIsTruncated(t *testing.T) {
	raw := "The model wrote a very long apology instead of JSON. " + strings.Repeat("x", 500)
	_, err := ParseModelJSON[flourishingPayload](raw, types.EngineFlourishing)
	var parseErr *ModelParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ModelParseError, got %v", err)
	}
	if len(parseErr.Fragment) != parseFragmentLen {
		t.Fatalf("expected fragment of %d chars, got %d", parseFragmentLen, len(parseErr.Fragment))
	}
}
