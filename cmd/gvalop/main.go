// Command gvalop filters text and evaluates arithmetic using expressions
// whose only precedence is explicit grouping.
//
// Usage:
//
//	# Print the lines of songs.txt naming any Marley but Ziggy
//	gvalop filter 'marley && !ziggy' songs.txt
//
//	# Evaluate arithmetic; there is no operator precedence
//	gvalop calc '1 + 2 * 3' '1 + (2 * 3)'
//
//	# Show how an expression groups
//	gvalop tree 'a && b || !c'
//
//	# Serve the HTTP API, reloading the config file when it changes
//	gvalop serve --config gvalop.yaml --watch
package main

func main() {
	Execute()
}
