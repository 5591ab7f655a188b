package domain

// DefaultPalette holds the five display colors cycled over user creations.
var DefaultPalette = []string{
	"#C81717",
	"#FF9A00",
	"#008E74",
	"#33078A",
	"#67078A",
}

// Directory hands out process-lifetime identities: monotonic 1-based ids
// for users and messages, and a palette color per created user.
// Ids are never reused, even if an entity later disappears from view.
type Directory struct {
	palette    []string
	userSeq    int
	messageSeq int
	colorSeq   int
}

func NewDirectory() *Directory {
	return &Directory{palette: DefaultPalette}
}

// NewUser allocates the next user id and the next palette color.
// The color counter increments on every creation regardless of palette size.
func (d *Directory) NewUser(name string) *User {
	d.userSeq++
	color := d.palette[d.colorSeq%len(d.palette)]
	d.colorSeq++
	return &User{ID: d.userSeq, Name: name, Color: color}
}

// NextMessageID returns the next monotonic message id, starting at 1.
func (d *Directory) NextMessageID() int {
	d.messageSeq++
	return d.messageSeq
}
