package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/infrastructure/config"
)

var (
	// Глобальные флаги
	cfgFile string

	appConfig  *entities.Config
	configRepo = config.NewRepository()
)

var rootCmd = &cobra.Command{
	Use:   "pdf-compressor",
	Short: "HTTP сервис уменьшения изображений в PDF документах",
	Long: `pdf-compressor принимает PDF документы по HTTP, уменьшает встроенные
изображения до 1000x1000, перекодирует их в JPEG и возвращает
оптимизированный документ.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = configRepo.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "путь к файлу конфигурации")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCompressCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
