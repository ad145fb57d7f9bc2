package mdp

// Values maps states to real numbers. Unseen states read as zero.
type Values[S comparable] map[S]float64

func (v Values[S]) Get(s S) float64 {
	return v.GetOr(s, 0)
}

func (v Values[S]) GetOr(s S, def float64) float64 {
	if val, ok := v[s]; ok {
		return val
	}
	return def
}

func (v Values[S]) Set(s S, val float64) {
	v[s] = val
}

func (v Values[S]) Len() int {
	return len(v)
}

func (v Values[S]) Clone() Values[S] {
	c := make(Values[S], len(v))
	for s, val := range v {
		c[s] = val
	}
	return c
}
