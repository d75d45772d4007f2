// Package ocr finds text in images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). A Detector
// reports block-level bounding boxes of recognized text; the editor uses it
// to keep automatically placed watermarks off captions and labels.
//
// EdgeLocator is a Tesseract-free fallback that scores sliding windows of a
// Sobel edge map by edge density and horizontal structure. Chain combines
// locators so the server can try Tesseract first and fall back to edges.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Supported Languages
//
// The default language is English ("eng"). Other languages can be specified
// using their Tesseract language codes:
//   - "eng" - English
//   - "deu" - German
//   - "fra" - French
//   - "spa" - Spanish
//   - See Tesseract documentation for full list
//
// # Performance Considerations
//
// OCR is computationally expensive. Detection runs once per watermark with
// automatic placement and never for the other tools.
//
// # Error Handling
//
// Detector methods return errors for nil images, unsupported language codes
// and Tesseract failures. Callers that only want a hint, like watermark
// placement, treat any error as "no text found".
package ocr
