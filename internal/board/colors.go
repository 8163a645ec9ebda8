package board

// coursePalette is the fixed set of card colors. Collisions between
// different course codes are acceptable; only determinism matters.
var coursePalette = []string{
	"#e63946",
	"#f4a261",
	"#e9c46a",
	"#2a9d8f",
	"#264653",
	"#457b9d",
	"#8e7dbe",
	"#d685ad",
}

// CourseColor deterministically maps a course code to a palette color
// using a simple rolling hash over the code's characters.
func CourseColor(code string) string {
	var hash int32
	for _, c := range code {
		hash = int32(c) + ((hash << 5) - hash)
	}
	idx := int(hash % int32(len(coursePalette)))
	if idx < 0 {
		idx = -idx
	}
	return coursePalette[idx]
}
