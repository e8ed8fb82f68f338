package analysis

import "strings"

const (
	bullet      = "- "
	titleMarker = bullet + LabelTitle + ":"
)

// BlockSchema turns the bulleted run of one section into records.
type BlockSchema[T any] interface {
	// Continues reports whether a non-bullet line still belongs to the
	// current record.
	Continues(line string) bool
	// Records splits the captured run into records. Malformed records are
	// dropped, never reported.
	Records(run []string) []T
}

// ExtractBlocks isolates the bulleted run that follows "sectionLabel:" in the
// Raw text and hands it to schema. Source order is kept.
func ExtractBlocks[T any](raw, sectionLabel string, schema BlockSchema[T]) []T {
	run := sectionRun(raw, sectionLabel, schema)
	if len(run) == 0 {
		return nil
	}
	return schema.Records(run)
}

// sectionRun captures the lines of the first occurrence of the section
// label that opens a line and is followed by a non-empty run. Blank lines
// right after the label are skipped; inside the run a blank line is
// tolerated only when the next non-blank line opens another bullet.
func sectionRun[T any](raw, label string, schema BlockSchema[T]) []string {
	for _, at := range lineLabelOffsets(raw, label) {
		if run := runFrom(raw[at:], schema); len(run) > 0 {
			return run
		}
	}
	return nil
}

func runFrom[T any](after string, schema BlockSchema[T]) []string {
	lines := strings.Split(strings.TrimLeft(after, " \t\n"), "\n")

	var run []string
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, bullet):
			run = append(run, line)
		case line == "":
			if !nextNonBlankIsBullet(lines[i+1:]) {
				return run
			}
		case len(run) > 0 && schema.Continues(line):
			run = append(run, line)
		default:
			return run
		}
	}
	return run
}

func nextNonBlankIsBullet(lines []string) bool {
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		return strings.HasPrefix(l, bullet)
	}
	return false
}

// AreaSchema reads "- <Area>: <Description>" bullets, one record per line.
type AreaSchema struct{}

func (AreaSchema) Continues(string) bool { return false }

func (AreaSchema) Records(run []string) []PatternDetail {
	out := make([]PatternDetail, 0, len(run))
	for _, line := range run {
		body := strings.TrimPrefix(line, bullet)
		i := strings.IndexByte(body, ':')
		if i < 0 {
			continue
		}
		area := strings.TrimSpace(body[:i])
		if area == "" {
			continue
		}
		out = append(out, PatternDetail{
			Area:        area,
			Description: strings.TrimSpace(body[i+1:]),
		})
	}
	return out
}

// ActionSchema reads records introduced by "- Title:" with Description,
// Timeframe and Urgency sub-fields on the following lines.
type ActionSchema struct{}

var actionSubLabels = []string{LabelDescription, LabelTimeframe, LabelUrgency}

func (ActionSchema) Continues(line string) bool {
	for _, l := range actionSubLabels {
		if strings.HasPrefix(line, l+":") {
			return true
		}
	}
	return false
}

func (ActionSchema) Records(run []string) []ActionDetail {
	var out []ActionDetail
	for _, rec := range splitOn(run, titleMarker) {
		if a, ok := actionFromLines(rec); ok {
			out = append(out, a)
		}
	}
	return out
}

// splitOn groups lines into spans that each start with marker. Lines before
// the first marker belong to no record.
func splitOn(lines []string, marker string) [][]string {
	var out [][]string
	for _, line := range lines {
		if strings.HasPrefix(line, marker) {
			out = append(out, []string{line})
			continue
		}
		if len(out) > 0 {
			out[len(out)-1] = append(out[len(out)-1], line)
		}
	}
	return out
}

func actionFromLines(rec []string) (ActionDetail, bool) {
	title := strings.TrimSpace(strings.TrimPrefix(rec[0], titleMarker))
	desc := fieldValue(rec[1:], LabelDescription)
	if title == "" || desc == "" {
		return ActionDetail{}, false
	}

	a := ActionDetail{Title: title, Description: desc}
	if tf := fieldValue(rec[1:], LabelTimeframe); tf != "" {
		a.Timeframe = &tf
	}
	// Urgency is lenient: an unknown token leaves it unset.
	if u, ok := ParseUrgency(leadingWord(fieldValue(rec[1:], LabelUrgency))); ok {
		a.Urgency = &u
	}
	return a, true
}

// ExtractPatternDetails reads the Pattern Details section of the Raw text.
func ExtractPatternDetails(raw string) []PatternDetail {
	return ExtractBlocks[PatternDetail](raw, LabelPatternDetails, AreaSchema{})
}

// ExtractImmediateActions reads the Immediate Actions section of the Raw text.
func ExtractImmediateActions(raw string) []ActionDetail {
	return ExtractBlocks[ActionDetail](raw, LabelImmediateActions, ActionSchema{})
}

// ExtractMedicalOptions reads the Medical Options section of the Raw text.
func ExtractMedicalOptions(raw string) []ActionDetail {
	return ExtractBlocks[ActionDetail](raw, LabelMedicalOptions, ActionSchema{})
}

// ExtractLifestyleChanges reads the Lifestyle Changes section of the Raw text.
func ExtractLifestyleChanges(raw string) []ActionDetail {
	return ExtractBlocks[ActionDetail](raw, LabelLifestyleChanges, ActionSchema{})
}
