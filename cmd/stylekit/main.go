// Command stylekit validates, inspects and emits style build configuration.
package main

func main() {
	Execute()
}
