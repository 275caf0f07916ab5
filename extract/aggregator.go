package extract

import "github.com/tsawler/trackgeom/model"

// structureAggregator collects barrel layers and endcap discs from a
// tracker traversal, in visit order.
type structureAggregator struct {
	layers []*model.Layer
	discs  []*model.Disc
}

var _ model.Visitor = (*structureAggregator)(nil)

func (a *structureAggregator) VisitBarrelLayer(l *model.Layer) {
	a.layers = append(a.layers, l)
}

func (a *structureAggregator) VisitEndcapDisc(d *model.Disc) {
	a.discs = append(a.discs, d)
}
