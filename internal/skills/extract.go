// Package skills derives short display tags from free-text or HTML job
// descriptions. Extraction is a pure two-tier heuristic: a fixed keyword
// vocabulary first, then a labeled "skills section" fallback. It does no
// I/O and never fails — when nothing matches, the single sentinel tag
// "Not specified" is returned.
package skills

import (
	"regexp"
	"strings"
)

// maxTags caps every result at four tags.
const maxTags = 4

// NotSpecified is the sentinel returned when neither pass finds anything.
const NotSpecified = "Not specified"

// vocabulary is an ordered list of literal skill terms. Entries are
// escaped before being compiled, so metacharacters ("c++", "ci/cd")
// stay literal when a new term is added.
var vocabulary = []string{
	"javascript", "python", "java", "c++", "ruby", "php", "typescript",
	"react", "angular", "vue", "node", "express", "django", "flask",
	"mongodb", "postgresql", "mysql", "redis", "aws", "azure", "gcp",
	"docker", "kubernetes", "jenkins", "git", "agile", "scrum",
	"html", "css", "sass", "less", "webpack", "babel", "rest api",
	"graphql", "sql", "nosql", "linux", "unix", "ci/cd", "devops",
	"machine learning", "ai", "data science", "blockchain", "cloud computing",
	"react native", "flutter", "swift", "kotlin", "android", "ios",
}

// boilerplate phrases disqualify a fallback piece when present as a
// case-insensitive substring.
var boilerplate = []string{
	"bachelor's degree", "master's degree", "phd", "years of experience",
	"experience in", "ability to", "strong", "excellent", "proven",
	"demonstrated", "track record", "background in", "proficiency in",
	"proficient in", "experience with", "familiar with", "understanding of",
	"knowledge of", "minimum", "preferred", "required", "qualification",
	"degree in", "work experience",
}

var (
	vocabularyRe = compileVocabulary(vocabulary)
	sectionRe    = regexp.MustCompile(`(?i)(?:required skills|key skills|technical skills|core competencies)(?:\s*:)?\s*([^.]*)`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`\s+`)
	splitRe      = regexp.MustCompile(`[,;•\n]`)
)

// compileVocabulary escapes every term and joins them with alternation.
// A \b assertion is attached only where the term starts or ends with a
// word character; "c++" would never match with a trailing \b because '+'
// is not a word character.
func compileVocabulary(terms []string) *regexp.Regexp {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		p := regexp.QuoteMeta(term)
		if isWordChar(rune(term[0])) {
			p = `\b` + p
		}
		if isWordChar(rune(term[len(term)-1])) {
			p = p + `\b`
		}
		parts = append(parts, p)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(parts, "|") + `)`)
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Extract returns at most four skill tags for content, in order of first
// appearance. Dictionary matches are lower-cased; fallback pieces keep
// their original casing.
func Extract(content string) []string {
	if found := dictionaryPass(content); len(found) > 0 {
		return found
	}
	if found := sectionPass(content); len(found) > 0 {
		return found
	}
	return []string{NotSpecified}
}

func dictionaryPass(content string) []string {
	matches := vocabularyRe.FindAllString(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	found := make([]string, 0, maxTags)
	for _, m := range matches {
		tag := strings.ToLower(m)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		found = append(found, tag)
		if len(found) == maxTags {
			break
		}
	}
	return found
}

// sectionPass locates a labeled skills section and splits the text up to
// the next sentence terminator (or end of input) into candidate tags.
func sectionPass(content string) []string {
	m := sectionRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	text := tagRe.ReplaceAllString(m[1], "")
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	var found []string
	for _, piece := range splitRe.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if len(piece) <= 2 || len(piece) >= 50 || isBoilerplate(piece) {
			continue
		}
		found = append(found, piece)
		if len(found) == maxTags {
			break
		}
	}
	return found
}

func isBoilerplate(piece string) bool {
	lower := strings.ToLower(piece)
	for _, phrase := range boilerplate {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
