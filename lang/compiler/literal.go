package compiler

import "strconv"

func parseInt32(lit string) int32 {
	v, _ := strconv.ParseInt(lit, 10, 32)
	return int32(v)
}

func parseFloat32(lit string) float32 {
	v, _ := strconv.ParseFloat(lit, 32)
	return float32(v)
}
