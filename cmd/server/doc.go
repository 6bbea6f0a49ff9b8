// Command server runs the dirscope HTTP service.
package main
