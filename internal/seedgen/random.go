package seedgen

// Source は [0,1) の浮動小数点数を返す乱数源。
// 実装はシードと呼び出し回数のみの純粋関数でなければならない。
type Source interface {
	Next() float64
}

// Mulberry32 は32bitシードから再現可能な乱数列を生成する。
// 壁時計や外部エントロピーには依存しない。
type Mulberry32 struct {
	state uint32
}

// NewSource はシードからMulberry32を生成する。
func NewSource(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Next は次の値を [0,1) で返す。
func (m *Mulberry32) Next() float64 {
	m.state += 0x6D2B79F5
	t := m.state
	r := (t ^ (t >> 15)) * (t | 1)
	r ^= r + (r^(r>>7))*(r|61)
	return float64(r^(r>>14)) / 4294967296.0
}

var _ Source = (*Mulberry32)(nil)
