// Package ioutils provides file name and image processing utilities.
//
// # Filename Sanitization
//
// Use SanitizeFileName to make a canonical track title safe to use as a
// file name on any platform:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
//
// # Image Processing
//
// The ImageService prepares fetched cover art for embedding:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 500x500
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
package ioutils
