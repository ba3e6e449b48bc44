package jpeg

/*
#cgo pkg-config: libjpeg
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <jpeglib.h>
#include <setjmp.h>

typedef struct {
    struct jpeg_error_mgr pub;
    jmp_buf               jmpbuf;
    char                  msg[JMSG_LENGTH_MAX];
} decode_err_mgr;

static void decode_error_exit(j_common_ptr cinfo) {
    decode_err_mgr *e = (decode_err_mgr *)cinfo->err;
    (*(cinfo->err->format_message))(cinfo, e->msg);
    longjmp(e->jmpbuf, 1);
}

typedef struct {
    unsigned char *data;
    unsigned int   len;
} decode_marker;

typedef struct {
    int            width;
    int            height;
    int            num_components;
    int            color_space;  // J_COLOR_SPACE of the stored image
    unsigned char *pixels;       // RGB output
    unsigned long  pixels_size;
    int            num_markers;
    int            has_error;
    char           error_msg[256];
} decode_result;

static decode_result decode_rgb_jpeg(const unsigned char *buf, unsigned long buf_size,
                                      decode_marker *markers, int max_markers, int *marker_count) {
    decode_result res;
    memset(&res, 0, sizeof(res));
    *marker_count = 0;

    struct jpeg_decompress_struct cinfo;
    decode_err_mgr jerr;

    cinfo.err = jpeg_std_error(&jerr.pub);
    jerr.pub.error_exit = decode_error_exit;

    if (setjmp(jerr.jmpbuf)) {
        strncpy(res.error_msg, jerr.msg, sizeof(res.error_msg)-1);
        res.has_error = 1;
        jpeg_destroy_decompress(&cinfo);
        return res;
    }

    jpeg_create_decompress(&cinfo);
    jpeg_save_markers(&cinfo, JPEG_APP0+2, 0xFFFF); // APP2 for ICC
    jpeg_mem_src(&cinfo, (unsigned char *)buf, buf_size);
    jpeg_read_header(&cinfo, TRUE);
    res.color_space = cinfo.jpeg_color_space;

    // Force RGB output
    cinfo.out_color_space = JCS_RGB;

    jpeg_start_decompress(&cinfo);

    res.width = cinfo.output_width;
    res.height = cinfo.output_height;
    res.num_components = cinfo.output_components; // should be 3 for RGB

    res.pixels_size = (unsigned long)res.width * res.height * res.num_components;
    res.pixels = (unsigned char *)malloc(res.pixels_size);
    if (res.pixels == NULL) {
        strncpy(res.error_msg, "malloc failed for pixel buffer", sizeof(res.error_msg)-1);
        res.has_error = 1;
        jpeg_destroy_decompress(&cinfo);
        return res;
    }

    int row_stride = res.width * res.num_components;
    while (cinfo.output_scanline < cinfo.output_height) {
        unsigned char *row = res.pixels + cinfo.output_scanline * row_stride;
        jpeg_read_scanlines(&cinfo, &row, 1);
    }

    // Extract APP2 markers
    jpeg_saved_marker_ptr m = cinfo.marker_list;
    int count = 0;
    while (m != NULL && count < max_markers) {
        if (m->marker == (JPEG_APP0+2) && m->data_length > 0) {
            markers[count].data = (unsigned char *)malloc(m->data_length);
            if (markers[count].data != NULL) {
                memcpy(markers[count].data, m->data, m->data_length);
                markers[count].len = m->data_length;
                count++;
            }
        }
        m = m->next;
    }
    *marker_count = count;

    jpeg_finish_decompress(&cinfo);
    jpeg_destroy_decompress(&cinfo);
    return res;
}

static void free_decode_markers(decode_marker *markers, int count) {
    for (int i = 0; i < count; i++) {
        free(markers[i].data);
    }
}

static void free_decode_pixels(unsigned char *p) {
    free(p);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"image"
	"unsafe"
)

// LibjpegVersion returns the JPEG library version.
func LibjpegVersion() int {
	return int(C.JPEG_LIB_VERSION)
}

// Decoded holds a JPEG source expanded to an opaque NRGBA image.
type Decoded struct {
	Image      *image.NRGBA
	ColorSpace string // color space stored in the file, before conversion to RGB
	ICC        []byte // extracted ICC profile, nil if absent
}

// Decode decodes a JPEG file from memory. Grayscale and YCbCr streams are
// converted to RGB by libjpeg; CMYK and YCCK streams fail to decode. JPEG
// carries no alpha, so every pixel of the result has A == 255.
func Decode(data []byte) (*Decoded, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, errors.New("not a JPEG stream (missing SOI marker)")
	}

	const maxMarkers = 256
	var cMarkers [maxMarkers]C.decode_marker
	var markerCount C.int

	res := C.decode_rgb_jpeg(
		(*C.uchar)(unsafe.Pointer(&data[0])),
		C.ulong(len(data)),
		&cMarkers[0],
		C.int(maxMarkers),
		&markerCount,
	)

	defer C.free_decode_markers(&cMarkers[0], markerCount)

	if res.has_error != 0 {
		return nil, fmt.Errorf("libjpeg decode: %s", C.GoString(&res.error_msg[0]))
	}

	defer C.free_decode_pixels(res.pixels)

	width, height := int(res.width), int(res.height)
	if int(res.num_components) != 3 {
		return nil, fmt.Errorf("libjpeg produced %d components, expected 3", int(res.num_components))
	}
	rgb := unsafe.Slice((*byte)(unsafe.Pointer(res.pixels)), int(res.pixels_size))

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(rgb); i, j = i+3, j+4 {
		img.Pix[j] = rgb[i]
		img.Pix[j+1] = rgb[i+1]
		img.Pix[j+2] = rgb[i+2]
		img.Pix[j+3] = 0xff
	}

	var app2Markers [][]byte
	for i := 0; i < int(markerCount); i++ {
		m := cMarkers[i]
		app2Markers = append(app2Markers, C.GoBytes(unsafe.Pointer(m.data), C.int(m.len)))
	}

	icc, err := ExtractICC(app2Markers)
	if err != nil {
		return nil, fmt.Errorf("extracting ICC: %w", err)
	}

	return &Decoded{
		Image:      img,
		ColorSpace: colorSpaceName(int(res.color_space)),
		ICC:        icc,
	}, nil
}
