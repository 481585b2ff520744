package hud

// tanFrac is tan(degrees) scaled by 1<<tanShift for 0..89°. A table keeps
// every platform producing the same cells.
const tanShift = 16

var tanFrac = [90]int64{
	0, 1144, 2289, 3435, 4583, 5734,
	6888, 8047, 9210, 10380, 11556, 12739,
	13930, 15130, 16340, 17560, 18792, 20036,
	21294, 22566, 23853, 25157, 26478, 27818,
	29179, 30560, 31964, 33392, 34846, 36327,
	37837, 39378, 40951, 42560, 44205, 45889,
	47615, 49385, 51202, 53070, 54991, 56970,
	59009, 61113, 63287, 65536, 67865, 70279,
	72785, 75391, 78103, 80930, 83882, 86969,
	90203, 93595, 97161, 100917, 104880, 109070,
	113512, 118230, 123255, 128622, 134369, 140542,
	147196, 154393, 162207, 170727, 180059, 190330,
	201699, 214359, 228551, 244584, 262851, 283868,
	308323, 337153, 371673, 413778, 466313, 533748,
	623533, 749080, 937208, 1250501, 1876705, 3754555,
}

// tan returns the scaled tangent of a whole degree in (-90, 90).
func tan(deg int) int64 {
	if deg < 0 {
		return -tanFrac[-deg]
	}
	return tanFrac[deg]
}

// cot returns the scaled cotangent of a whole degree in (-90, 90), deg != 0.
func cot(deg int) int64 {
	if deg < 0 {
		return -tanFrac[90+deg]
	}
	return tanFrac[90-deg]
}

// floorDiv and floorMod round toward negative infinity so sub-cell
// coordinates above the grid map to negative rows instead of row 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
