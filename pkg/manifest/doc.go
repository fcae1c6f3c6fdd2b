// Package manifest converts a package.json into a Factorio info.json.
//
// A [Package] is read from the npm-style package.json of a mod project. Its
// top-level fields supply name, version, description, author, contact and
// homepage; the "factorio" section supplies everything info.json needs that
// npm has no field for:
//
//	{
//	  "name": "my-mod",
//	  "version": "1.0.0",
//	  "author": {"name": "Jane"},
//	  "contributors": ["Joe"],
//	  "bugs": {"url": "https://github.com/jane/my-mod/issues"},
//	  "factorio": {
//	    "title": "My Mod",
//	    "factorio_version": "2.0",
//	    "dependencies": ["base >= 2.0.0", "? flib >= 0.14.0"],
//	    "quality_required": true
//	  }
//	}
//
// [FromPackage] builds the [Info], [Check] reports what the game would
// reject (errors) and what the mod portal would reject (warnings), and
// [WriteInfo] writes the result.
package manifest
