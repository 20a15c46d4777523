// Package main is the entry point for the Astroneer catalog service.
//
//	@title			Astroneer
//	@version		1.0.0
//	@description	Game data for Astroneer: craftable modules, their printers and resource costs, and the resources found on each planet.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:5000
//	@BasePath		/astro/v1
package main

func main() {
	Execute()
}
