package entities

import "errors"

// Доменные ошибки
var (
	ErrInvalidImageQuality    = errors.New("качество изображения должно быть от 1 до 100")
	ErrInvalidImageDimensions = errors.New("размеры изображения должны быть положительными")
	ErrUnsupportedImage       = errors.New("неподдерживаемый формат изображения")
	ErrUnknownAlgorithm       = errors.New("неизвестный алгоритм сжатия")
	ErrLicenseRequired        = errors.New("UniPDF требует лицензионный ключ")
	ErrEmptyUpload            = errors.New("пустой или отсутствующий файл")
	ErrInvalidPort            = errors.New("порт должен быть от 1 до 65535")
	ErrInvalidUploadLimit     = errors.New("лимит загрузки должен быть положительным")
	ErrFileNotFound           = errors.New("файл не найден")
	ErrInvalidFileFormat      = errors.New("неверный формат файла")
	ErrCompressionFailed      = errors.New("ошибка сжатия файла")
)
