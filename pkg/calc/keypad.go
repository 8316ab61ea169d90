package calc

// BasicKeypad is the basic layout, row by row.
var BasicKeypad = [][]string{
	{"C", "⌫", "(", ")", "/"},
	{"7", "8", "9", "*", "%"},
	{"4", "5", "6", "-", "^"},
	{"1", "2", "3", "+", "pow"},
	{"0", ".", "=", "ANS", "OFF"},
}

// ScientificKeypad is the scientific layout. BACK returns to basic.
var ScientificKeypad = [][]string{
	{"sqrt", "root", "factorial", "abs", "pi"},
	{"sin", "cos", "tan", "asin", "acos"},
	{"atan", "log", "ln", "e", "deg"},
	{"rad", "pow", "^", "ANS", "BACK"},
}

// Keypad returns the layout for m.
func Keypad(m Mode) [][]string {
	if m == ModeScientific {
		return ScientificKeypad
	}
	return BasicKeypad
}
