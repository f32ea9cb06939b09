// Package theme holds the daisyUI theme catalog used to resolve the theme
// names listed in a style configuration. The bundled catalog is embedded;
// custom themes can be added from ~/.config/stylekit/themes/.
package theme
