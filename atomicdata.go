/*
 * atomicdata.go, part of gorefine.
 *
 * Copyright 2024 The goRefine Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package refine

// A map for assigning mass to elements.
// Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Si": 28.08,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

// Atomic numbers, used as weights when ordering the kinematic tree.
var symbolZ = map[string]int{
	"H":  1,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Na": 11,
	"Mg": 12,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Mn": 25,
	"Fe": 26,
	"Co": 27,
	"Cu": 29,
	"Zn": 30,
	"Se": 34,
	"Br": 35,
	"I":  53,
}

// A map for assigning van der Waals radii to elements
// Values from 10.1021/j100785a001 and 10.1021/jp8111556
// metal radii from 10.1023/A:1011625728803
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Si": 2.10,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

// Well depths (kcal/mol) for the element-based default types. Roughly the
// AMBER values for the common bio-elements, 0.1 for everything else.
var symbolWell = map[string]float64{
	"H": 0.0157,
	"C": 0.086,
	"N": 0.17,
	"O": 0.21,
	"P": 0.2,
	"S": 0.25,
}

// AtomicNumber returns the atomic number for the element symbol, or 0
// if the element is not known.
func AtomicNumber(symbol string) int {
	return symbolZ[symbol]
}

// Mass returns the mass of the element, or 0 if not known.
func Mass(symbol string) float64 {
	return symbolMass[symbol]
}

// VdwRadius returns the van der Waals radius of the element, or 0 if not known.
func VdwRadius(symbol string) float64 {
	return symbolVdwrad[symbol]
}
