// Command cakectl exercises the identity core and its storage backends
// from the shell: building and inspecting Cakes, racks, paths, and salted
// digests, and driving the bbolt-backed blob and portal stores.
package main

func main() {
	Execute()
}
