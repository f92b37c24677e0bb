// Command cookbook extracts recipe titles from PDF cookbooks.
package main

func main() {
	Execute()
}
