package vector_math

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// Mat is a row-major matrix of float32.
type Mat [][]float32

func NewMat(r uint, c uint) (Mat, error) {
	if r == 0 || c == 0 {
		return nil, errors.New("cannot construct 0-sized matrix")
	}
	m := make([][]float32, r)
	for i := range m {
		m[i] = make([]float32, c)
	}
	return m, nil
}

func (m *Mat) Mult(b *Mat) (Mat, error) {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if colsA != rowsB {
		return nil, fmt.Errorf(
			"can't multiply %dx%d matrix with %dx%d matrix, size of columns and rows do not match",
			rowsA, colsA, rowsB, colsB,
		)
	}
	C, _ := NewMat(uint(rowsA), uint(colsB))
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsB; j++ {
			for k := 0; k < colsA; k++ {
				C[i][j] += (*m)[i][k] * (*b)[k][j]
			}
		}
	}
	return C, nil
}

func (m *Mat) Transpose() Mat {
	mT, _ := NewMat(uint(m.ColCnt()), uint(m.RowCnt()))
	for i := range *m {
		for j := range (*m)[i] {
			mT[j][i] = (*m)[i][j]
		}
	}
	return mT
}

func (m *Mat) Equals(b *Mat) bool {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if rowsA != rowsB || colsA != colsB {
		return false
	}
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsA; j++ {
			if (*m)[i][j] != (*b)[i][j] {
				return false
			}
		}
	}
	return true
}

// Description functions

func (m *Mat) RowCnt() int {
	return len(*m)
}

// ColCnt is 0 for an empty matrix.
func (m *Mat) ColCnt() int {
	if len(*m) == 0 {
		return 0
	}
	return len((*m)[0])
}

func (m *Mat) Size() (int, int) {
	return (*m).RowCnt(), (*m).ColCnt()
}

func (m *Mat) ByteSize() int {
	return int(unsafe.Sizeof(float32(0))) * (*m).RowCnt() * (*m).ColCnt()
}

// Unroll flattens the matrix column by column, which is the order shading
// languages expect a matNxM in memory.
func (m *Mat) Unroll() []float32 {
	rows, cols := m.Size()
	f := make([]float32, 0, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			f = append(f, (*m)[i][j])
		}
	}
	return f
}

func (m *Mat) ToString() string {
	mStr := strings.Builder{}
	for i := range *m {
		if i > 0 {
			mStr.WriteString("\n")
		}
		mStr.WriteString(fmt.Sprintf("%v", (*m)[i]))
	}
	return mStr.String()
}

func (m *Mat) Describe() string {
	return fmt.Sprintf(
		"%dx%d Matrix, %d Bytes in memory:\n%s",
		m.RowCnt(), m.ColCnt(), m.ByteSize(), m.ToString(),
	)
}
