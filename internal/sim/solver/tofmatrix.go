package solver

// ToFMatrix is a dense |Tx| x |Rx| matrix of summed transmitter+receiver
// path lengths, one row per transmitter.
type ToFMatrix struct {
	values  [][]float32
	txCount int
	rxCount int
}

// NewToFMatrix returns a zero-initialized matrix with txCount rows and
// rxCount columns.
func NewToFMatrix(txCount, rxCount int) *ToFMatrix {
	values := make([][]float32, txCount)
	for i := range values {
		values[i] = make([]float32, rxCount)
	}
	return &ToFMatrix{values: values, txCount: txCount, rxCount: rxCount}
}

// At returns the value at (tx, rx).
func (m *ToFMatrix) At(tx, rx int) float32 { return m.values[tx][rx] }

// Set stores v at (tx, rx).
func (m *ToFMatrix) Set(tx, rx int, v float32) { m.values[tx][rx] = v }

// TxCount returns the number of transmitter rows.
func (m *ToFMatrix) TxCount() int { return m.txCount }

// RxCount returns the number of receiver columns.
func (m *ToFMatrix) RxCount() int { return m.rxCount }
