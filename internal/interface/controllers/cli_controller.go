package controllers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"pdfcompressor/internal/domain/entities"
	usecases "pdfcompressor/internal/usecase"
)

// CLIController контроллер для командной строки
type CLIController struct {
	compressPDFUseCase *usecases.CompressPDFUseCase
	out                io.Writer
}

// NewCLIController создает новый CLI контроллер. Если out равен nil, вывод идет в stdout.
func NewCLIController(compressPDFUseCase *usecases.CompressPDFUseCase, out io.Writer) *CLIController {
	if out == nil {
		out = os.Stdout
	}
	return &CLIController{
		compressPDFUseCase: compressPDFUseCase,
		out:                out,
	}
}

// HandleSingleFile обрабатывает сжатие одного файла
func (c *CLIController) HandleSingleFile(inputPath, outputPath string) error {
	color.New(color.FgCyan, color.Bold).Fprintln(c.out, "🔥 PDF Compressor - Сжатие PDF файлов")
	fmt.Fprintln(c.out, "====================================")
	fmt.Fprintf(c.out, "\n🚀 Начинаем сжатие файла: %s\n", inputPath)

	result, savedPath, err := c.compressPDFUseCase.ExecuteFile(inputPath, outputPath)
	if err != nil {
		color.New(color.FgRed).Fprintf(c.out, "✗ Ошибка сжатия: %v\n", err)
		return fmt.Errorf("ошибка сжатия: %w", err)
	}

	c.showCompressionResult(result, savedPath)
	return nil
}

// showCompressionResult показывает результат сжатия файла
func (c *CLIController) showCompressionResult(result *entities.CompressionResult, outputPath string) {
	fmt.Fprintln(c.out, "\n📊 Результаты сжатия:")
	fmt.Fprintf(c.out, "Страниц: %d\n", result.Pages)
	fmt.Fprintf(c.out, "Изображений: %d (уменьшено: %d)\n", result.ImagesFound, result.ImagesResized)
	if result.FormsSkipped > 0 || result.OtherSkipped > 0 {
		fmt.Fprintf(c.out, "Пропущено объектов: форм %d, прочих %d\n", result.FormsSkipped, result.OtherSkipped)
	}
	fmt.Fprintf(c.out, "Исходный размер: %.2f MB\n", float64(result.OriginalSize)/1024/1024)
	fmt.Fprintf(c.out, "Сжатый размер: %.2f MB\n", float64(result.CompressedSize)/1024/1024)
	fmt.Fprintf(c.out, "Сжатие: %.1f%%\n", result.CompressionRatio)
	fmt.Fprintf(c.out, "Сэкономлено: %.2f MB\n", float64(result.SavedSpace)/1024/1024)

	if result.IsEffective() {
		color.New(color.FgGreen).Fprintln(c.out, "✅ Сжатие выполнено успешно!")
	} else {
		color.New(color.FgYellow).Fprintln(c.out, "⚠️ Файл не уменьшился (возможно, уже оптимизирован)")
	}

	fmt.Fprintf(c.out, "\n🎉 Готово! Сжатый файл сохранен как: %s\n", outputPath)
}
