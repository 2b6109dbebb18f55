package gwas

// Logger is satisfied by *log.Logger.
type Logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Discard drops everything logged to it.
var Discard Logger = discard{}

type discard struct{}

func (discard) Print(v ...interface{})                 {}
func (discard) Printf(format string, v ...interface{}) {}
func (discard) Println(v ...interface{})               {}
