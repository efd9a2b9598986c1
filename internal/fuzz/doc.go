// Package fuzztests houses Go fuzz harnesses for the front end: mode
// scanner, lexer, parser and incremental reparse. They guard against
// panics, hangs and lossy trees on arbitrary input.
//
// Назначение: прогонять произвольные байты через сканер, лексер, парсер и
// инкрементальный разбор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
