package gwas

import (
	"github.com/carbocation/gwastrack/surface"
)

// Label is a variant name drawn above its highlighted marker.
type Label struct {
	surface.Point
	Text string
}

// Overlay is the split of a table into what gets drawn.
type Overlay struct {
	// Base holds every record.
	Base []surface.Point

	// Highlight holds the credible-set records. It is empty when the table
	// has no CS column.
	Highlight []surface.Point

	// Labels holds one entry per highlighted record flagged INT. It is
	// empty when the table has no CS or no INT column.
	Labels []Label
}

// Select places every record at (BP, displayed P). labelOffset is added to
// the y of each label anchor.
func Select(t *Table, c Clamper, labelOffset float64) Overlay {
	var out Overlay

	out.Base = make([]surface.Point, 0, len(t.Records))
	for _, rec := range t.Records {
		out.Base = append(out.Base, surface.Point{X: float64(rec.Position), Y: c.Display(rec.P)})
	}

	if !t.HasCS {
		return out
	}

	for i, rec := range t.Records {
		if !rec.CS {
			continue
		}
		pt := out.Base[i]
		out.Highlight = append(out.Highlight, pt)

		if t.HasINT && rec.INT {
			out.Labels = append(out.Labels, Label{
				Point: surface.Point{X: pt.X, Y: pt.Y + labelOffset},
				Text:  rec.SNP,
			})
		}
	}

	return out
}
