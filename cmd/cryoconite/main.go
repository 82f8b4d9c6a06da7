/*
Copyright © 2020 the cryoconite authors.
This file is part of cryoconite.

cryoconite is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

cryoconite is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with cryoconite.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command cryoconite is a command-line interface for the cryoconite hole
// energy balance model.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/cryoconite/cryoutil"
)

func main() {
	if err := cryoutil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
