// Package jsonfile persists annotation documents as JSON files.
//
// Each document looks like:
//
//	{
//	  "filename": "captions.txt",
//	  "annotations": {
//	    "0_1": {"caption_index": 0, "sentence_index": 1, "caption": "...",
//	            "sentence": "...", "subject": "...", "predicate": "...",
//	            "object": "...", "timestamp": "2024-05-01T10:00:00Z"}
//	  },
//	  "last_updated": "2024-05-01T10:00:00Z"
//	}
//
// Documents written before sentence segmentation existed use bare caption
// indices as keys and omit "sentence_index" and "sentence". They load as
// (caption, 0).
package jsonfile
