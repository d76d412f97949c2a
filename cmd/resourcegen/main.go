package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fyerfyer/fyer-resmodel/codegen/resourcegen"
	"github.com/fyerfyer/fyer-resmodel/logger"
)

// resourcegen 从结构体定义生成字段映射、资源模型构造函数和字段引用
func main() {
	input := flag.String("i", "", "model file path (e.g., ./model/user.go)")
	output := flag.String("o", "", "output directory, defaults to the model file's directory")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: resourcegen -i <model_file> [-o <output_dir>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	outputDir := *output
	if outputDir == "" {
		outputDir = filepath.Dir(*input)
	}
	outputDir = filepath.Clean(outputDir)

	log := logger.Default().WithFields(logger.String("input", *input), logger.String("output", outputDir))
	if err := resourcegen.Generate(*input, outputDir); err != nil {
		log.Error("resourcegen failed", logger.FieldError(err))
		os.Exit(1)
	}
	log.Info("resourcegen finished")
}
