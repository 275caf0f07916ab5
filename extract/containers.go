package extract

import (
	"math"

	"github.com/tsawler/trackgeom/records"
)

// analyseBarrelContainer traces the stair-stepped outline enclosing all
// barrel layers and emits it as a polycone shape. The profile is built as
// two runs of (r, z) points by increasing radius: the up run along
// negative z, the down run along positive z; a consumer traverses up
// first-to-last and down last-to-first to close the polygon.
func (e *Extractor) analyseBarrelContainer() error {
	type span struct {
		rmin, rmax, zmax float64
	}
	var spans []span
	for li, layer := range e.layers {
		ext, err := e.measureLayer(layer, li+1)
		if err != nil {
			return err
		}
		if ext.rmax-ext.rmin <= 0 {
			continue
		}
		spans = append(spans, span{rmin: ext.rmin, rmax: ext.rmax, zmax: ext.zmax})
	}
	if len(spans) == 0 {
		return nil
	}

	var up, down []records.RZPoint
	var rmax, zmin, zmax float64
	for i, sp := range spans {
		lzmin, lzmax := -sp.zmax, sp.zmax
		if i == 0 {
			up = append(up, records.RZPoint{R: sp.rmin, Z: lzmin})
			down = append(down, records.RZPoint{R: sp.rmin, Z: lzmax})
		} else if lzmax != zmax {
			// Step between layers of different length: the corner radius
			// follows whichever layer sticks out.
			r := rmax
			if lzmax > zmax {
				r = sp.rmin
			}
			up = append(up, records.RZPoint{R: r, Z: zmin}, records.RZPoint{R: r, Z: lzmin})
			down = append(down, records.RZPoint{R: r, Z: zmax}, records.RZPoint{R: r, Z: lzmax})
		}
		if i == len(spans)-1 {
			up = append(up, records.RZPoint{R: sp.rmax, Z: lzmin})
			down = append(down, records.RZPoint{R: sp.rmax, Z: lzmax})
		}
		rmax = sp.rmax
		if lzmin < 0 {
			zmin = lzmin
		}
		if lzmax > 0 {
			zmax = lzmax
		}
	}

	e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
		Name:   barrelContainerName,
		Kind:   records.Polycone,
		RZUp:   up,
		RZDown: down,
	})
	return nil
}

// analyseEndcapContainer traces the stair-stepped outline enclosing the
// positive-z endcap discs and emits it as a polycone shape. Points are
// expressed relative to the endcap volume's z origin. Discs entirely at
// negative z contribute nothing; with no positive-z disc at all the
// endcap container is omitted.
func (e *Extractor) analyseEndcapContainer() error {
	type span struct {
		rmin, rmax, zmin, zmax float64
	}
	var spans []span
	for di, disc := range e.discs {
		sp := span{rmin: math.MaxFloat64, zmin: math.MaxFloat64, rmax: -math.MaxFloat64, zmax: -math.MaxFloat64}
		seen := make(map[int]bool)
		n := 0
		for _, mod := range disc.Modules {
			if seen[mod.Ring] {
				continue
			}
			seen[mod.Ring] = true
			dec := newDecomposer(mod, endcapModuleName(mod.Ring, di+1), e.opts.Namespace)
			if err := dec.build(); err != nil {
				return err
			}
			sp.rmin = math.Min(sp.rmin, dec.rmin)
			sp.rmax = math.Max(sp.rmax, dec.rmax)
			sp.zmin = math.Min(sp.zmin, dec.zmin)
			sp.zmax = math.Max(sp.zmax, dec.zmax)
			n++
		}
		if n == 0 {
			continue
		}
		spans = append(spans, sp)
	}

	fz := e.opts.ForwardZOrigin
	var up, down []records.RZPoint
	var rmin, rmax, zmax float64
	hasFirst := false
	for i, sp := range spans {
		if !hasFirst {
			if sp.zmax <= 0 {
				continue
			}
			hasFirst = true
			rmin, rmax = sp.rmin, sp.rmax
			up = append(up, records.RZPoint{R: rmax, Z: sp.zmin - fz})
			down = append(down, records.RZPoint{R: rmin, Z: sp.zmin - fz})
		} else {
			if rmax > sp.rmax {
				// Shrinking envelope: step in at the previous disc's far
				// edge.
				up = append(up, records.RZPoint{R: rmax, Z: zmax - fz})
				down = append(down, records.RZPoint{R: rmin, Z: zmax - fz})
				rmax, rmin = sp.rmax, sp.rmin
				up = append(up, records.RZPoint{R: rmax, Z: zmax - fz})
				down = append(down, records.RZPoint{R: rmin, Z: zmax - fz})
			}
			if rmax < sp.rmax {
				// Growing envelope: step out at the current disc's near
				// edge.
				up = append(up, records.RZPoint{R: rmax, Z: sp.zmin - fz})
				down = append(down, records.RZPoint{R: rmin, Z: sp.zmin - fz})
				rmax, rmin = sp.rmax, sp.rmin
				up = append(up, records.RZPoint{R: rmax, Z: sp.zmin - fz})
				down = append(down, records.RZPoint{R: rmin, Z: sp.zmin - fz})
			}
		}
		zmax = sp.zmax
		if i == len(spans)-1 {
			up = append(up, records.RZPoint{R: rmax, Z: zmax - fz})
			down = append(down, records.RZPoint{R: rmin, Z: zmax - fz})
		}
	}
	if len(up) == 0 || len(down) == 0 {
		return nil
	}

	e.bundle.Shapes = append(e.bundle.Shapes, records.Shape{
		Name:   endcapContainerName,
		Kind:   records.Polycone,
		RZUp:   up,
		RZDown: down,
	})
	return nil
}
