package extractor

// Mapping tables from dialect-specific tag keys to canonical field names.
// Each table is a pure lookup; value coercion happens in the extractor
// that applies it.

// id3TextFrames maps ID3v2 text frame IDs to canonical fields. Several
// frames map to "date"; id3DatePriority fixes which one wins when more
// than one is present.
var id3TextFrames = map[string]string{
	"TIT2": FieldTitle,
	"TPE1": FieldArtist,
	"TALB": FieldAlbum,
	"TPE2": FieldAlbumArtist,
	"TCON": FieldGenre,
	"TDRC": FieldDate, // recording date (v2.4)
	"TORY": FieldDate, // original release year
	"TYER": FieldDate, // year (v2.3)
	"TLAN": FieldLanguage,
	"TPUB": FieldPublisher,
	"TCOM": FieldComposer,
	"USLT": FieldLyrics,
}

// id3DatePriority orders the date-bearing frames; the first frame present
// in the tag supplies the date and later ones never overwrite it.
var id3DatePriority = []string{"TDRC", "TORY", "TYER"}

const (
	id3TrackFrame   = "TRCK"
	id3DiscFrame    = "TPOS"
	id3PictureFrame = "APIC"
	id3ChapterFrame = "CHAP"
)

// mp4Atoms maps MP4 metadata atoms to canonical fields. The © prefix is
// the 0xA9 byte used by iTunes-style atoms.
var mp4Atoms = map[string]string{
	"\xa9nam": FieldTitle,
	"\xa9ART": FieldArtist,
	"\xa9alb": FieldAlbum,
	"aART":    FieldAlbumArtist,
	"\xa9gen": FieldGenre,
	"\xa9day": FieldDate,
	"\xa9lyr": FieldLyrics,
	"\xa9too": FieldEncoder,
	"\xa9wrt": FieldComposer,
	"\xa9cmt": FieldComment,
}

const (
	mp4TrackAtom = "trkn"
	mp4DiscAtom  = "disk"
	mp4CoverAtom = "covr"
)

// vorbisComments maps Vorbis comment names (matched case-insensitively,
// normalized to upper case) to canonical fields. APE tags share this
// structure, so the APE dialect aliases this table.
var vorbisComments = map[string]string{
	"TITLE":       FieldTitle,
	"ARTIST":      FieldArtist,
	"ALBUM":       FieldAlbum,
	"ALBUMARTIST": FieldAlbumArtist,
	"GENRE":       FieldGenre,
	"DATE":        FieldDate,
	"TRACKNUMBER": FieldTrack,
	"TRACKTOTAL":  FieldTrackTotal,
	"DISCNUMBER":  FieldDisc,
	"DISCTOTAL":   FieldDiscTotal,
	"LANGUAGE":    FieldLanguage,
	"PUBLISHER":   FieldPublisher,
	"COMPOSER":    FieldComposer,
	"COMMENT":     FieldComment,
}

// vorbisNumericFields are coerced to int; malformed values are dropped
// field-locally rather than failing the record.
var vorbisNumericFields = map[string]bool{
	FieldTrack:      true,
	FieldTrackTotal: true,
	FieldDisc:       true,
	FieldDiscTotal:  true,
}

const vorbisPictureBlock = "METADATA_BLOCK_PICTURE"

// riffInfo maps RIFF LIST-INFO chunk IDs (WAV files) to canonical fields.
var riffInfo = map[string]string{
	"INAM": FieldTitle,
	"IART": FieldArtist,
	"IPRD": FieldAlbum,
	"IGNR": FieldGenre,
	"ICRD": FieldDate,
	"ICMT": FieldComment,
	"ISFT": FieldEncoder,
}

// matroskaTags maps general-track tag names (matched case-insensitively,
// normalized to lower case) to canonical fields. Matroska tag names come
// through probing tools with inconsistent casing.
var matroskaTags = map[string]string{
	"title":         FieldTitle,
	"album":         FieldAlbum,
	"artist":        FieldArtist,
	"performer":     FieldArtist,
	"genre":         FieldGenre,
	"date_recorded": FieldDate,
	"recorded_date": FieldDate,
	"date":          FieldDate,
	"comment":       FieldComment,
	"encoder":       FieldEncoder,
	"language":      FieldLanguage,
}

// matroskaTagOrder fixes application order where several tag names feed
// the same canonical field.
var matroskaTagOrder = []string{
	"title",
	"album",
	"artist",
	"performer",
	"genre",
	"date_recorded",
	"recorded_date",
	"date",
	"comment",
	"encoder",
	"language",
}

// dublinCoreTerms maps OPF Dublin Core terms to canonical fields. The
// creator term is multi-valued; ebook extraction joins all creators.
var dublinCoreTerms = map[string]string{
	"title":      FieldTitle,
	"creator":    FieldAuthor,
	"language":   FieldLanguage,
	"publisher":  FieldPublisher,
	"date":       FieldDate,
	"identifier": FieldIdentifier,
}
