package history

import (
	"fmt"
	"strings"
	"unicode"
)

type Result struct {
	Entry
	Snippet string
	Rank    float64
}

// Search finds saved analyses by title or participant name. Word queries go
// through FTS5 with prefix matching; queries without any letter or digit
// (emoji names, punctuation) fall back to a substring scan.
func (d *DB) Search(query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if hasWordRune(query) {
		return d.searchFTS(query, limit)
	}
	return d.searchLike(query, limit)
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ftsQuery quotes every term so user input cannot reach FTS5 syntax, and
// makes each term a prefix match.
func ftsQuery(q string) string {
	fields := strings.Fields(q)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		terms = append(terms, `"`+strings.ReplaceAll(f, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}

func (d *DB) searchFTS(query string, limit int) ([]Result, error) {
	rows, err := d.db.Query(`
		SELECT
			a.id, a.title, a.source_path, a.created_at, a.start_date, a.end_date, a.total_messages, a.participants,
			snippet(analyses_fts, -1, '>>>', '<<<', '...', 12) AS snip,
			bm25(analyses_fts) AS rank
		FROM analyses_fts
		JOIN analyses a ON analyses_fts.rowid = a.id
		WHERE analyses_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		e, err := scanEntry(rows, &r.Snippet, &r.Rank)
		if err != nil {
			return nil, err
		}
		r.Entry = e
		r.Snippet = strings.ReplaceAll(r.Snippet, "\n", ", ")
		results = append(results, r)
	}
	return results, rows.Err()
}

func (d *DB) searchLike(query string, limit int) ([]Result, error) {
	pat := "%" + query + "%"
	rows, err := d.db.Query(`
		SELECT id, title, source_path, created_at, start_date, end_date, total_messages, participants
		FROM analyses
		WHERE title LIKE ? OR participants LIKE ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, pat, pat, limit)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{Entry: e, Snippet: makeSnippet(e.Title, query, 20)})
	}
	return results, rows.Err()
}

// makeSnippet marks the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	idx := strings.Index(text, query)
	if idx < 0 {
		runes := []rune(text)
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	runePos := len([]rune(text[:idx]))
	qLen := len([]rune(query))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + qLen + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	return prefix + string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+qLen]) + "<<<" +
		string(runes[runePos+qLen:end]) + suffix
}
