package game

import "math"

func distance(ax, ay, bx, by float32) float32 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// normalize 返回单位向量；长度为零时 ok 为 false
func normalize(x, y float32) (float32, float32, bool) {
	l := distance(x, y, 0, 0)
	if l == 0 {
		return 0, 0, false
	}
	return x / l, y / l, true
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stepToward 向目标最多移动 step，返回移动前的剩余距离
func stepToward(x, y, tx, ty, step float32) (float32, float32, float32) {
	d := distance(x, y, tx, ty)
	if d == 0 {
		return x, y, 0
	}
	return x + (tx-x)/d*step, y + (ty-y)/d*step, d
}
