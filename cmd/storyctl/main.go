// Command storyctl manages storyloom data without starting the desktop app.
package main

func main() {
	Execute()
}
