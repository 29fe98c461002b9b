// Package calc implements the four-function calculator core.
//
// A Buffer holds at most three tokens, [operand, operator, operand], and folds
// key commands into it: digits and decimal points build the active operand,
// operators chain by evaluating a complete expression before appending, and
// equals replays the last operator and operand when pressed repeatedly.
//
// Every operation returns the display string. Errors (operator on an empty
// buffer, division by zero, a display wider than MaxDisplayLen) latch the
// buffer into the Sentinel state until AllClear.
package calc
