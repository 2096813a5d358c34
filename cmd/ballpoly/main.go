// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"github.com/avdva/ball/internal/cmd"
)

func main() {
	cmd.Execute()
}
