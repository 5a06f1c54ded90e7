// Package markdown locates titles and heading sections in markdown sources.
package markdown
