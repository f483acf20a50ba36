package domain

// CodeAnnotation records which agent last touched a line of source, plus any
// companion metadata found near the marker.
type CodeAnnotation struct {
	FilePath   string
	LineNumber int
	AgentName  string
	Timestamp  string
	TaskRef    string
	Notes      string
}

// AnnotationIndex maps a file path to the annotations found in it, in scan
// order. The index is replaced wholesale on every rescan.
type AnnotationIndex map[string][]CodeAnnotation

// Total counts annotations across all files.
func (idx AnnotationIndex) Total() int {
	total := 0
	for _, anns := range idx {
		total += len(anns)
	}
	return total
}
