package ir

// SpreadsheetIDs returns the first n chain identifiers in spreadsheet
// column order: A..Z, AA, AB, ...
func SpreadsheetIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = indexToLetters(i)
	}
	return ids
}

func indexToLetters(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var buf []byte
	i++
	for i > 0 {
		i--
		buf = append([]byte{letters[i%26]}, buf...)
		i /= 26
	}
	return string(buf)
}
