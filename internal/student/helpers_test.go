package student_test

import "strconv"

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
